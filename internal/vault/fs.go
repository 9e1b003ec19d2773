package vault

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// FS is the file access a Store needs. zfilesystem.ReadWriteFileFS and
// zfilesystem.MemFS satisfy it.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// osFS reads and writes real paths. Writes go to a temporary file in the
// same directory which then replaces the target, so readers see either the
// old content or the new content and never a partial file.
type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o700); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}

	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	return nil
}
