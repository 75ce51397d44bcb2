package typesystem

import (
	"sort"

	"github.com/funvibe/fxquery/internal/source"
)

// TypeAndOrigins pairs a resolved type with the locations that gave the checker
// evidence for it ("why is this an Int?").
type TypeAndOrigins struct {
	Type    Type
	Origins []source.Loc
}

// OriginLocs returns the origins sorted by file and offset with duplicates removed.
func (t TypeAndOrigins) OriginLocs() []source.Loc {
	locs := make([]source.Loc, 0, len(t.Origins))
	seen := make(map[source.Loc]bool, len(t.Origins))
	for _, loc := range t.Origins {
		if !loc.Exists() || seen[loc] {
			continue
		}
		seen[loc] = true
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].File() != locs[j].File() {
			return locs[i].File() < locs[j].File()
		}
		if locs[i].BeginPos() != locs[j].BeginPos() {
			return locs[i].BeginPos() < locs[j].BeginPos()
		}
		return locs[i].EndPos() < locs[j].EndPos()
	})
	return locs
}
