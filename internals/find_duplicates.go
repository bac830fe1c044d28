package internals

import (
	"cmp"
	"slices"
	"strings"
)

// DuplicateGroup is a set of at least two files with the same digest.
// Members are sorted by path; the first member is the keeper.
type DuplicateGroup struct {
	Digest  Digest
	Members []FileRecord
	Size    uint64
}

// Keeper returns the member presumed to be the original
func (g *DuplicateGroup) Keeper() FileRecord {
	return g.Members[0]
}

// Duplicates returns all members but the keeper
func (g *DuplicateGroup) Duplicates() []FileRecord {
	return g.Members[1:]
}

// WastedBytes is the space occupied by all members but the keeper
func (g *DuplicateGroup) WastedBytes() uint64 {
	return g.Size * uint64(len(g.Members)-1)
}

// FindDuplicates groups files by digest and returns all groups with two or more members.
// Members are ordered by ascending path. Groups are ordered by descending wasted bytes
// and ascending digest. The result only depends on the set of files given,
// not on their order.
func FindDuplicates(files []HashedFile) []DuplicateGroup {
	// NOTE string(digest) is only used as map key
	byDigest := make(map[string][]FileRecord, len(files))
	for _, file := range files {
		key := string(file.Digest)
		byDigest[key] = append(byDigest[key], file.FileRecord)
	}

	groups := make([]DuplicateGroup, 0, 16)
	for key, members := range byDigest {
		if len(members) < 2 {
			continue
		}
		slices.SortFunc(members, func(a, b FileRecord) int {
			return strings.Compare(a.Path, b.Path)
		})
		groups = append(groups, DuplicateGroup{
			Digest:  Digest(key),
			Members: members,
			Size:    members[0].Size,
		})
	}

	slices.SortFunc(groups, func(a, b DuplicateGroup) int {
		if c := cmp.Compare(b.WastedBytes(), a.WastedBytes()); c != 0 {
			return c
		}
		return a.Digest.Compare(b.Digest)
	})

	return groups
}
