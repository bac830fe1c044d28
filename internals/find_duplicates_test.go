package internals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashed(path string, size uint64, digest ...byte) HashedFile {
	return HashedFile{FileRecord: FileRecord{Path: path, Size: size}, Digest: Digest(digest)}
}

func TestFindDuplicatesGroups(t *testing.T) {
	files := []HashedFile{
		hashed("/d/z.png", 10, 0x01),
		hashed("/d/a.png", 10, 0x01),
		hashed("/d/unique.png", 99, 0x02),
		hashed("/d/m.png", 10, 0x01),
		hashed("/d/x.jpg", 500, 0x03),
		hashed("/d/y.jpg", 500, 0x03),
	}

	groups := FindDuplicates(files)
	require.Len(t, groups, 2)

	// 500 wasted bytes beat 20 wasted bytes
	assert.Equal(t, Digest{0x03}, groups[0].Digest)
	assert.Equal(t, uint64(500), groups[0].WastedBytes())
	assert.Equal(t, "/d/x.jpg", groups[0].Keeper().Path)

	assert.Equal(t, Digest{0x01}, groups[1].Digest)
	assert.Equal(t, uint64(10), groups[1].Size)
	assert.Equal(t, uint64(20), groups[1].WastedBytes())
	assert.Equal(t, []FileRecord{
		{Path: "/d/a.png", Size: 10}, {Path: "/d/m.png", Size: 10}, {Path: "/d/z.png", Size: 10},
	}, groups[1].Members)
	assert.Equal(t, "/d/a.png", groups[1].Keeper().Path)
	assert.Len(t, groups[1].Duplicates(), 2)
}

func TestFindDuplicatesNoDuplicates(t *testing.T) {
	assert.Empty(t, FindDuplicates(nil))
	assert.Empty(t, FindDuplicates([]HashedFile{
		hashed("/a.png", 1, 0x01),
		hashed("/b.png", 1, 0x02),
	}))
}

func TestFindDuplicatesIndependentOfInputOrder(t *testing.T) {
	files := []HashedFile{
		hashed("/c.png", 4, 0xaa),
		hashed("/a.png", 4, 0xbb),
		hashed("/b.png", 4, 0xaa),
		hashed("/d.png", 4, 0xbb),
	}
	reversed := make([]HashedFile, len(files))
	for i, f := range files {
		reversed[len(files)-1-i] = f
	}

	first := FindDuplicates(files)
	assert.Equal(t, first, FindDuplicates(reversed))

	// equal wasted bytes, ordered by digest
	require.Len(t, first, 2)
	assert.Equal(t, Digest{0xaa}, first[0].Digest)
	assert.Equal(t, Digest{0xbb}, first[1].Digest)
}

func TestFindDuplicatesEmptyFiles(t *testing.T) {
	groups := FindDuplicates([]HashedFile{
		hashed("/empty1.gif", 0, 0xd4),
		hashed("/empty2.gif", 0, 0xd4),
	})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)
	assert.Equal(t, uint64(0), groups[0].WastedBytes())
}

func TestFindDuplicatesWastedSpace(t *testing.T) {
	files := []HashedFile{
		hashed("/1", 7, 0x01), hashed("/2", 7, 0x01), hashed("/3", 7, 0x01), hashed("/4", 7, 0x01),
		hashed("/5", 3, 0x02), hashed("/6", 3, 0x02),
	}
	groups := FindDuplicates(files)

	var total uint64
	duplicates := 0
	for i := range groups {
		g := &groups[i]
		assert.GreaterOrEqual(t, len(g.Members), 2)
		assert.Equal(t, g.Size*uint64(len(g.Members)-1), g.WastedBytes())
		total += g.WastedBytes()
		duplicates += len(g.Duplicates())
	}
	assert.Equal(t, uint64(21+3), total)
	assert.Equal(t, 4, duplicates)
}
