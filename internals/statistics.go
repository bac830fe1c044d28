package internals

import (
	"fmt"
)

// Statistics collects counters of one scan
type Statistics struct {
	Directories        uint64 `json:"directories"`
	SkippedDirectories uint64 `json:"skipped-directories"`
	Candidates         uint64 `json:"candidates"`
	Hashed             uint64 `json:"hashed"`
	SkippedFiles       uint64 `json:"skipped-files"`
	TotalSize          uint64 `json:"total-size"`
}

func (s *Statistics) String() string {
	d := "dirs"
	if s.Directories == 1 {
		d = "dir"
	}
	f := "image files"
	if s.Candidates == 1 {
		f = "image file"
	}
	return fmt.Sprintf(`%d %s in %d %s, %d hashed (%s), %d skipped`,
		s.Candidates, f, s.Directories, d, s.Hashed, HumanReadableBytes(s.TotalSize),
		s.SkippedFiles+s.SkippedDirectories)
}
