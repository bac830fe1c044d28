package internals

import (
	"cmp"
	"slices"
	"strings"
)

// Report represents the result of one scan
type Report struct {
	Root          string
	HashAlgorithm HashAlgo
	Groups        []DuplicateGroup
	// Skipped lists unreadable directories and files, sorted by path
	Skipped []*ScanError
	Stats   Statistics
}

// NewReport groups hashed files and assembles a Report
func NewReport(root string, algo HashAlgo, hashed []HashedFile, skipped []*ScanError, stats Statistics) *Report {
	sorted := slices.Clone(skipped)
	slices.SortFunc(sorted, func(a, b *ScanError) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	return &Report{
		Root:          root,
		HashAlgorithm: algo,
		Groups:        FindDuplicates(hashed),
		Skipped:       sorted,
		Stats:         stats,
	}
}

// GroupCount returns the number of duplicate groups
func (r *Report) GroupCount() int {
	return len(r.Groups)
}

// DuplicateCount returns the number of files which are not keepers
func (r *Report) DuplicateCount() int {
	count := 0
	for _, g := range r.Groups {
		count += len(g.Members) - 1
	}
	return count
}

// WastedBytes returns the sum of wasted bytes of all groups
func (r *Report) WastedBytes() uint64 {
	var total uint64
	for i := range r.Groups {
		total += r.Groups[i].WastedBytes()
	}
	return total
}
