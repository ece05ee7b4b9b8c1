package layouter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/render"
)

func (l *Layouter[T]) persist(a render.Artifact) error {
	switch {
	case l.cfg.path != "":
		if err := WriteFile(l.cfg.path, a.Data); err != nil {
			return err
		}
		l.cfg.logger.Info("wrote file", "path", l.cfg.path, "bytes", a.Len())
	case l.cfg.writer != nil:
		if _, err := l.cfg.writer.Write(a.Data); err != nil {
			return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s output", a.Format)
		}
	}
	return nil
}

// WriteFile replaces path with data. Readers of path see either the old or
// the new contents, never a partial write. Failures carry IO_FAILURE.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	return nil
}

// writeFileAtomic writes data to a uniquely named sibling of path and renames
// it over path. The temporary file is removed on any failure.
func writeFileAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
