package internals

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// HashedFile extends FileRecord with its content digest
type HashedFile struct {
	FileRecord
	Digest Digest
}

// HashFile resets hash and computes the digest of the file described by rec.
// If the file cannot be read or its size does not match rec.Size,
// a ScanError of kind UnreadableFile is returned.
func HashFile(fs afero.Fs, hash Hash, rec FileRecord) (Digest, error) {
	hash.Reset()
	n, err := hash.ReadFile(fs, rec.Path)
	if err != nil {
		return nil, &ScanError{Kind: UnreadableFile, Path: rec.Path, Err: err}
	}
	if n != rec.Size {
		return nil, &ScanError{
			Kind: UnreadableFile,
			Path: rec.Path,
			Err:  fmt.Errorf(`%w: expected %d bytes, read %d bytes`, ErrFileChanged, rec.Size, n),
		}
	}
	return hash.Digest(), nil
}

// Hasher distributes FileRecords among Workers concurrent hash units
type Hasher struct {
	Fs            afero.Fs
	Algorithm     HashAlgo
	Workers       int
	Logger        *slog.Logger
	ProgressEvery uint64
}

// hashUnitResult is owned by exactly one hash unit until all units terminated
type hashUnitResult struct {
	hashed  []HashedFile
	skipped []*ScanError
}

// HashAll hashes every record received from in until in is closed.
// Every unit collects its results locally; they are merged after all units finished,
// thus no shared state is mutated concurrently. Unreadable files are returned
// as ScanErrors and do not terminate the run. The only error returned is ctx.Err().
func (h *Hasher) HashAll(ctx context.Context, in <-chan FileRecord) ([]HashedFile, []*ScanError, error) {
	workers := h.Workers
	if workers <= 0 {
		workers = 1
	}
	logger := h.Logger
	if logger == nil {
		logger = discardLogger
	}

	var done atomic.Uint64
	results := make([]hashUnitResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for u := 0; u < workers; u++ {
		unit := &results[u]
		g.Go(func() error {
			hash := h.Algorithm.Algorithm()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case rec, ok := <-in:
					if !ok {
						return nil
					}

					digest, err := HashFile(h.Fs, hash, rec)
					if err != nil {
						logger.Warn("cannot hash file, skipping", "path", rec.Path, "error", err)
						unit.skipped = append(unit.skipped, err.(*ScanError))
					} else {
						unit.hashed = append(unit.hashed, HashedFile{FileRecord: rec, Digest: digest})
					}

					n := done.Add(1)
					if h.ProgressEvery > 0 && n%h.ProgressEvery == 0 {
						logger.Info("hashing", "processed", n)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// merge
	var countHashed, countSkipped int
	for _, r := range results {
		countHashed += len(r.hashed)
		countSkipped += len(r.skipped)
	}
	hashed := make([]HashedFile, 0, countHashed)
	skipped := make([]*ScanError, 0, countSkipped)
	for _, r := range results {
		hashed = append(hashed, r.hashed...)
		skipped = append(skipped, r.skipped...)
	}

	return hashed, skipped, nil
}
