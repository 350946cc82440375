package filesystems

import (
	"fmt"
	"io/fs"
	"iter"
	"maps"
	"path"
	"slices"
	"strings"
	"time"
)

var _ FileSystem = (*MemoryFS)(nil)

// MemoryFS implements FileSystem over an in-memory tree of slash-separated
// paths. It is only used by tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryFS creates a new MemoryFS instance
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file, creating its parent directories
func (mfs *MemoryFS) AddFile(name string, content []byte) {
	name = path.Clean(name)
	mfs.files[name] = content
	mfs.addParents(name)
}

// AddDir adds an empty directory, creating its parents
func (mfs *MemoryFS) AddDir(name string) {
	name = path.Clean(name)
	mfs.dirs[name] = true
	mfs.addParents(name)
}

func (mfs *MemoryFS) addParents(name string) {
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		mfs.dirs[dir] = true
	}
}

func (mfs *MemoryFS) isDir(name string) bool {
	return name == "." || name == "/" || mfs.dirs[name]
}

func (mfs *MemoryFS) stat(name string) (*memoryFileInfo, error) {
	if content, ok := mfs.files[name]; ok {
		return &memoryFileInfo{name: path.Base(name), size: int64(len(content))}, nil
	}
	if mfs.isDir(name) {
		return &memoryFileInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// children returns the sorted names directly under dir
func (mfs *MemoryFS) children(dir string) []string {
	names := make(map[string]bool)
	for _, tree := range []iter.Seq[string]{maps.Keys(mfs.files), maps.Keys(mfs.dirs)} {
		for p := range tree {
			if p != dir && path.Dir(p) == dir {
				names[path.Base(p)] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(names))
}

func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	content, ok := mfs.files[path.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (mfs *MemoryFS) Walk(root string, fn WalkFunc) error {
	root = path.Clean(root)

	info, err := mfs.stat(root)
	if err != nil {
		return fn(root, nil, err)
	}

	err = mfs.walk(root, info, fn)
	if err == SkipDir {
		return nil
	}
	return err
}

func (mfs *MemoryFS) walk(name string, info *memoryFileInfo, fn WalkFunc) error {
	if err := fn(name, info, nil); err != nil {
		if err == SkipDir && info.IsDir() {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return nil
	}

	for _, child := range mfs.children(name) {
		childPath := path.Join(name, child)
		childInfo, err := mfs.stat(childPath)
		if err != nil {
			return err
		}

		if err := mfs.walk(childPath, childInfo, fn); err != nil {
			// SkipDir from a file skips the rest of its directory
			if err == SkipDir && !childInfo.IsDir() {
				return nil
			}
			return err
		}
	}

	return nil
}

func (mfs *MemoryFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (mfs *MemoryFS) Base(p string) string {
	return path.Base(p)
}

func (mfs *MemoryFS) Rel(basepath, targpath string) (string, error) {
	base := path.Clean(basepath)
	target := path.Clean(targpath)

	switch {
	case base == target:
		return ".", nil
	case base == "." && !path.IsAbs(target) && target != ".." && !strings.HasPrefix(target, "../"):
		return target, nil
	case strings.HasPrefix(target, strings.TrimSuffix(base, "/")+"/"):
		return strings.TrimPrefix(target, strings.TrimSuffix(base, "/")+"/"), nil
	}

	return "", fmt.Errorf("can't make %s relative to %s", targpath, basepath)
}

// memoryFileInfo implements FileInfo
type memoryFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi *memoryFileInfo) Name() string { return fi.name }
func (fi *memoryFileInfo) Size() int64  { return fi.size }
func (fi *memoryFileInfo) IsDir() bool  { return fi.dir }
func (fi *memoryFileInfo) Sys() any     { return nil }

func (fi *memoryFileInfo) ModTime() time.Time { return time.Time{} }

func (fi *memoryFileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
