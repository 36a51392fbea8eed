package testutil

import (
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// MockFS is an in-memory implementation of jsonlit.FileSystem for testing.
// Paths are slash separated.
type MockFS struct {
	Files map[string][]byte // existing files by path
	Dirs  []string          // existing directories

	StatErr      error
	ReadFileErr  error
	WriteFileErr error
	MkdirAllErr  error
	GlobErr      error

	WrittenFiles map[string][]byte
	CreatedDirs  []string
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi mockFileInfo) Name() string { return fi.name }
func (fi mockFileInfo) Size() int64  { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return fi.dir }
func (fi mockFileInfo) Sys() any           { return nil }

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	if data, ok := m.Files[name]; ok {
		return mockFileInfo{name: path.Base(name), size: int64(len(data))}, nil
	}
	if slices.Contains(m.Dirs, name) {
		return mockFileInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	if m.WrittenFiles == nil {
		m.WrittenFiles = make(map[string][]byte)
	}
	m.WrittenFiles[name] = data
	return nil
}

func (m *MockFS) MkdirAll(p string, _ fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.CreatedDirs = append(m.CreatedDirs, p)
	return nil
}

func (m *MockFS) IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Glob matches pattern against the files below dir, returning paths relative to dir.
func (m *MockFS) Glob(dir, pattern string) ([]string, error) {
	if m.GlobErr != nil {
		return nil, m.GlobErr
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var matches []string
	for name := range m.Files {
		rel, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, rel)
		}
	}
	slices.Sort(matches)
	return matches, nil
}
