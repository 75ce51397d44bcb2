// Package source holds the text of every file the type checker has seen and the
// absolute offset ranges (locations) that point into that text.
package source

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownFile is returned when a FileRef does not name an entered file.
var ErrUnknownFile = errors.New("unknown file")

// FileRef identifies a file entered into a Files table. The zero value means "no file".
type FileRef uint32

// Exists reports whether the ref names a file at all.
func (r FileRef) Exists() bool {
	return r != 0
}

// File is a single source buffer.
type File struct {
	Path   string
	Source string

	lineStarts []int // byte offset of the first character of every line
}

func newFile(path, text string) *File {
	f := &File{Path: path, Source: text}
	f.lineStarts = append(f.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LineCount returns the number of lines, counting a trailing partial line.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// lineOf returns the 0-based line containing offset.
func (f *File) lineOf(offset int) int {
	// first line start strictly greater than offset, minus one
	return sort.SearchInts(f.lineStarts, offset+1) - 1
}

// Files is the table of source buffers shared between the type checker and the
// consumers of its query responses.
type Files struct {
	mu     sync.RWMutex
	files  []*File // index 0 is reserved for "no file"
	byPath map[string]FileRef
}

func NewFiles() *Files {
	return &Files{
		files:  []*File{nil},
		byPath: make(map[string]FileRef),
	}
}

// Enter registers text under path. Entering a path a second time replaces its
// contents but keeps the same FileRef, so existing locations keep pointing at it.
func (fs *Files) Enter(path, text string) FileRef {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if ref, ok := fs.byPath[path]; ok {
		fs.files[ref] = newFile(path, text)
		return ref
	}
	ref := FileRef(len(fs.files))
	fs.files = append(fs.files, newFile(path, text))
	fs.byPath[path] = ref
	return ref
}

// File returns the file named by ref.
func (fs *Files) File(ref FileRef) (*File, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if ref == 0 || int(ref) >= len(fs.files) {
		return nil, fmt.Errorf("file #%d: %w", ref, ErrUnknownFile)
	}
	return fs.files[ref], nil
}

// Lookup returns the ref previously assigned to path.
func (fs *Files) Lookup(path string) (FileRef, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	ref, ok := fs.byPath[path]
	return ref, ok
}

// Len returns the number of entered files.
func (fs *Files) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files) - 1
}
