package lsp

import (
	"fmt"
	"strings"

	"github.com/funvibe/fxquery/internal/source"
)

// PathToURI and URIToPath convert between file paths and file:// URIs.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}

func URIToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// RangeOf converts loc to a protocol range.
func RangeOf(files *source.Files, loc source.Loc) (Range, error) {
	begin, end, err := loc.Position(files)
	if err != nil {
		return Range{}, err
	}
	return Range{
		Start: Position{Line: begin.Line - 1, Character: begin.Column - 1},
		End:   Position{Line: end.Line - 1, Character: end.Column - 1},
	}, nil
}

// LocationOf converts loc to a protocol location.
func LocationOf(files *source.Files, loc source.Loc) (Location, error) {
	f, err := files.File(loc.File())
	if err != nil {
		return Location{}, err
	}
	rng, err := RangeOf(files, loc)
	if err != nil {
		return Location{}, err
	}
	return Location{URI: PathToURI(f.Path), Range: rng}, nil
}

// OffsetOf converts a protocol position in file to an absolute offset.
func OffsetOf(files *source.Files, file source.FileRef, pos Position) (uint32, error) {
	f, err := files.File(file)
	if err != nil {
		return 0, err
	}
	off, ok := source.DetailToOffset(f, source.Detail{Line: pos.Line + 1, Column: pos.Character + 1})
	if !ok {
		return 0, fmt.Errorf("%s: line %d out of range", f.Path, pos.Line)
	}
	return uint32(off), nil
}
