// Package loc has routines for tracking source locations.
package loc

import (
	"fmt"
	"strings"
)

// Loc compactly identifies a byte range in a source file.
// The zero value indicates no location.
type Loc [2]int

// A Locer has a Loc.
type Locer interface {
	Loc() Loc
}

// Loc returns the Loc itself, so a Loc is a Locer.
func (l Loc) Loc() Loc { return l }

// A Location identifies a string in a file by line and column.
// The zero value indicates no location.
type Location struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Location) String() string {
	if (l == Location{}) {
		return ""
	}
	if l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1] {
		return fmt.Sprintf("%s:%d.%d", l.Path, l.Line[0], l.Col[0])
	}
	return fmt.Sprintf("%s:%d.%d-%d.%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
}

// A File maps Locs to line/column Locations within a single source file.
type File struct {
	path string
	nls  []int
	len  int
}

// NewFile returns a File for the given source text.
func NewFile(path, src string) *File {
	f := &File{path: path, len: len(src)}
	for i, r := range src {
		if r == '\n' {
			f.nls = append(f.nls, i)
		}
	}
	return f
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Len returns the length of the file in bytes.
func (f *File) Len() int { return f.len }

// Location returns the Location for a Loc in the file.
func (f *File) Location(l Loc) Location {
	switch {
	case l == Loc{}:
		return Location{}
	case l[0] > l[1] || l[1]-1 > f.len:
		panic("bad Loc")
	}
	l0, c0 := f.lineCol(l[0])
	l1, c1 := f.lineCol(l[1])
	return Location{Path: f.path, Line: [2]int{l0, l1}, Col: [2]int{c0, c1}}
}

func (f *File) lineCol(q int) (int, int) {
	q-- // 0 value is no-location; locs start at 1
	line, colStart := 1, -1
	for _, nl := range f.nls {
		if nl >= q {
			break
		}
		colStart = nl
		line++
	}
	return line, q - colStart
}

// Span returns the Loc of a substring of the file's source,
// identified by its byte offset and length.
// It is a convenience for building test inputs.
func Span(offs, n int) Loc {
	return Loc{offs + 1, offs + n + 1}
}

// TrimPath returns the Location with prefix trimmed from its path.
func TrimPath(l Location, prefix string) Location {
	l.Path = strings.TrimPrefix(l.Path, prefix)
	return l
}
