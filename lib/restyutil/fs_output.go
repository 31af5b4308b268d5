package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes every dump to its own file in a directory.
type FilesystemOutput struct {
	dir string
}

// NewFilesystemOutput empties dir so it only holds dumps of the current run.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{dir: dir}, nil
}

func (o FilesystemOutput) Dir() string {
	return o.dir
}

func (o FilesystemOutput) Write(name string, contents string) {
	err := os.WriteFile(filepath.Join(o.dir, filepath.Base(name)), []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write http dump", "name", name, "err", err)
	}
}
