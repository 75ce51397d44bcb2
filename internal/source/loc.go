package source

import "fmt"

// Offsets is a half-open byte range [Begin, End) in absolute file coordinates.
type Offsets struct {
	Begin uint32
	End   uint32
}

// Len returns the width of the range.
func (o Offsets) Len() uint32 {
	if o.End < o.Begin {
		return 0
	}
	return o.End - o.Begin
}

// Loc is a file-scoped offset range. Locations reference the text held by a Files
// table but never own it.
type Loc struct {
	file    FileRef
	offsets Offsets
}

// NewLoc builds a location from a file and absolute begin/end offsets.
func NewLoc(file FileRef, begin, end uint32) Loc {
	return Loc{file: file, offsets: Offsets{Begin: begin, End: end}}
}

// None is the location of nothing.
func None() Loc {
	return Loc{}
}

func (l Loc) File() FileRef    { return l.file }
func (l Loc) Offsets() Offsets { return l.offsets }
func (l Loc) BeginPos() uint32 { return l.offsets.Begin }
func (l Loc) EndPos() uint32   { return l.offsets.End }
func (l Loc) Exists() bool     { return l.file.Exists() }
func (l Loc) WithOffsets(o Offsets) Loc {
	return Loc{file: l.file, offsets: o}
}

// Contains reports whether other lies entirely inside l.
func (l Loc) Contains(other Loc) bool {
	return l.file == other.file &&
		l.offsets.Begin <= other.offsets.Begin &&
		other.offsets.End <= l.offsets.End
}

// Source returns the text covered by l. It reports false when the file is unknown
// or the range falls outside the file.
func (l Loc) Source(fs *Files) (string, bool) {
	if !l.Exists() {
		return "", false
	}
	f, err := fs.File(l.file)
	if err != nil {
		return "", false
	}
	begin, end := int(l.offsets.Begin), int(l.offsets.End)
	if begin > end || end > len(f.Source) {
		return "", false
	}
	return f.Source[begin:end], true
}

// Detail is a 1-based line/column pair.
type Detail struct {
	Line   int
	Column int
}

// Position converts l into line/column details for both ends.
func (l Loc) Position(fs *Files) (begin, end Detail, err error) {
	f, err := fs.File(l.file)
	if err != nil {
		return Detail{}, Detail{}, err
	}
	if int(l.offsets.End) > len(f.Source) || l.offsets.Begin > l.offsets.End {
		return Detail{}, Detail{}, fmt.Errorf("%s: range [%d, %d) outside file of length %d",
			f.Path, l.offsets.Begin, l.offsets.End, len(f.Source))
	}
	return OffsetToDetail(f, int(l.offsets.Begin)), OffsetToDetail(f, int(l.offsets.End)), nil
}

// Show renders l as path:line:column for diagnostics and logs.
func (l Loc) Show(fs *Files) string {
	if !l.Exists() {
		return "<none>"
	}
	f, err := fs.File(l.file)
	if err != nil {
		return l.String()
	}
	begin, _, err := l.Position(fs)
	if err != nil {
		return fmt.Sprintf("%s[%d,%d)", f.Path, l.offsets.Begin, l.offsets.End)
	}
	return fmt.Sprintf("%s:%d:%d", f.Path, begin.Line, begin.Column)
}

func (l Loc) String() string {
	if !l.Exists() {
		return "<none>"
	}
	return fmt.Sprintf("#%d[%d,%d)", l.file, l.offsets.Begin, l.offsets.End)
}
