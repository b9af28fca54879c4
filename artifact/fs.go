// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package artifact

import (
	"bytes"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
)

// CreateFS defines a file system interface that supports creating files and directories.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS is a host directory. Names are host paths, joined to the
// directory unless absolute; the empty DirFS is the working directory.
type DirFS string

var _ CreateFS = DirFS("")
var _ fs.FS = DirFS("")

func (dir DirFS) join(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(string(dir), name)
}

// Open opens a file for reading.
func (dir DirFS) Open(name string) (fs.File, error) {
	return os.Open(dir.join(name))
}

// Sub returns the DirFS of a subdirectory.
func (dir DirFS) Sub(name string) (sub CreateFS, err error) {
	where := dir.join(name)
	info, err := os.Stat(where)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = &fs.PathError{Op: "sub", Path: where, Err: fs.ErrInvalid}
		return
	}
	sub = DirFS(where)
	return
}

// Create creates or truncates a file.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(dir.join(name))
}

// Mkdir creates a directory.
func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	return os.Mkdir(dir.join(name), filemode)
}

type memStore struct {
	files map[string]*bytes.Buffer
	dirs  map[string]bool
}

// MemFS is an in-memory CreateFS.
type MemFS struct {
	dir   string
	store *memStore
}

var _ CreateFS = &MemFS{}

// NewMemFS returns an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		dir: ".",
		store: &memStore{
			files: map[string]*bytes.Buffer{},
			dirs:  map[string]bool{".": true},
		},
	}
}

type memFile struct {
	*bytes.Buffer
}

func (memFile) Close() error {
	return nil
}

func (mfs *MemFS) path(op string, name string) (where string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
		return
	}
	where = path.Join(mfs.dir, name)
	if !mfs.store.dirs[path.Dir(where)] {
		err = &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		return
	}
	return
}

// Sub returns the view of an existing subdirectory.
func (mfs *MemFS) Sub(name string) (sub CreateFS, err error) {
	where, err := mfs.path("sub", name)
	if err != nil {
		return
	}
	if !mfs.store.dirs[where] {
		err = &fs.PathError{Op: "sub", Path: name, Err: fs.ErrNotExist}
		return
	}
	sub = &MemFS{dir: where, store: mfs.store}
	return
}

// Create creates or truncates a file.
func (mfs *MemFS) Create(name string) (file io.WriteCloser, err error) {
	where, err := mfs.path("create", name)
	if err != nil {
		return
	}
	if mfs.store.dirs[where] {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
		return
	}
	buf := &bytes.Buffer{}
	mfs.store.files[where] = buf
	file = memFile{buf}
	return
}

// Mkdir creates a directory.
func (mfs *MemFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	where, err := mfs.path("mkdir", name)
	if err != nil {
		return
	}
	_, is_file := mfs.store.files[where]
	if is_file || mfs.store.dirs[where] {
		err = &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
		return
	}
	mfs.store.dirs[where] = true
	return
}

// ReadFile returns the contents of a created file.
func (mfs *MemFS) ReadFile(name string) (data []byte, err error) {
	where, err := mfs.path("read", name)
	if err != nil {
		return
	}
	buf, ok := mfs.store.files[where]
	if !ok {
		err = &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
		return
	}
	data = bytes.Clone(buf.Bytes())
	return
}

// Files returns the sorted names of every file, from the root.
func (mfs *MemFS) Files() []string {
	return slices.Sorted(maps.Keys(mfs.store.files))
}
