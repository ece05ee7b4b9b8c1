package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Limits on untrusted input.
const (
	MaxLabelLength    = 1024
	MaxFilenameLength = 255
)

// ValidateLabel checks a node label read from an input document. Labels may
// be empty; they may not exceed [MaxLabelLength] bytes or contain control
// characters other than tab.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d bytes)", MaxLabelLength)
	}
	if strings.ContainsFunc(label, func(r rune) bool { return r != '\t' && unicode.IsControl(r) }) {
		return New(ErrCodeInvalidInput, "label contains control characters")
	}
	return nil
}

// ValidateFilename checks a download name for the Content-Disposition
// header: a visible basename without separators, quotes or control
// characters.
func ValidateFilename(name string) error {
	var problem string
	switch {
	case name == "":
		problem = "is empty"
	case len(name) > MaxFilenameLength:
		problem = "is too long"
	case strings.ContainsAny(name, `/\`):
		problem = "contains a path separator"
	case strings.HasPrefix(name, "."):
		problem = "names a hidden file"
	case strings.ContainsFunc(name, func(r rune) bool { return r == '"' || unicode.IsControl(r) }):
		problem = "contains invalid characters"
	default:
		return nil
	}
	return New(ErrCodeInvalidPath, "filename %s", problem)
}

// ValidateURL checks that rawURL is "<scheme>://<something>" for one of
// schemes, defaulting to http and https.
func ValidateURL(rawURL string, schemes ...string) error {
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok || rest == "" || !slices.Contains(schemes, scheme) {
		return New(ErrCodeInvalidInput, "invalid URL %q: want %s://...", rawURL, strings.Join(schemes, "|"))
	}
	return nil
}
