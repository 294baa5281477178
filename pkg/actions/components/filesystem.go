package components

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/kubev2v/action-agent/pkg/actions"
)

// FileSystem performs file operations on the agent host. Relative paths are
// resolved against Root when it is set.
type FileSystem struct {
	Root string
}

func FileSystemComponent(root string) actions.Component {
	return actions.Component{
		Name: "filesystem",
		New:  func() (any, error) { return &FileSystem{Root: root}, nil },
		Actions: []actions.Action{
			actions.Proc2("createFile", (*FileSystem).CreateFile),
			actions.Func1("readFile", (*FileSystem).ReadFile),
			actions.Proc1("deleteFile", (*FileSystem).DeleteFile),
			actions.Func1("doesFileExist", (*FileSystem).DoesFileExist),
			actions.Func1("listDirectory", (*FileSystem).ListDirectory),
		},
	}
}

func (f *FileSystem) path(name string) string {
	if f.Root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.Root, name)
}

// CreateFile writes content to name, creating parent directories.
func (f *FileSystem) CreateFile(name, content string) error {
	p := f.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(content), 0o644)
}

func (f *FileSystem) ReadFile(name string) (string, error) {
	b, err := os.ReadFile(f.path(name))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (f *FileSystem) DeleteFile(name string) error {
	return os.Remove(f.path(name))
}

func (f *FileSystem) DoesFileExist(name string) (bool, error) {
	_, err := os.Stat(f.path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// ListDirectory returns the sorted entry names of a directory.
func (f *FileSystem) ListDirectory(name string) ([]string, error) {
	entries, err := os.ReadDir(f.path(name))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
