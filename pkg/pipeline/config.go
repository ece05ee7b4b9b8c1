package pipeline

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treelayout/pkg/errors"
)

// LoadOptionsFile reads options from a TOML file such as:
//
//	drawer = "svg"
//	style = "text"
//	orientation = "left-right"
//	node_width = 60
//
// Unknown keys are rejected so that typos do not pass silently.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file")
		}
		return Options{}, errors.Wrap(errors.ErrCodeIOFailure, err, "read %s", path)
	}
	return ParseOptions(data)
}

// ParseOptions decodes TOML options.
func ParseOptions(data []byte) (Options, error) {
	var opts Options
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}
