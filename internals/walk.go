package internals

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// This module implements the traversal logic. Concurrent units
// evaluate file-based data. How do they interact?
//
// (1) a traversal logic emits image files with metadata ⇒ FileRecord
// (2) every FileRecord is hashed by exactly one worker ⇒ HashedFile
// (3) a coordinator merges HashedFiles of all workers and groups them by digest ⇒ DuplicateGroup

// FileRecord contains attributes of an image file found during traversal
type FileRecord struct {
	Path string `json:"path"`
	Size uint64 `json:"size"`
}

// Walker visits all directories below Root and emits image files
type Walker struct {
	Fs         afero.Fs
	Root       string
	Extensions ExtensionSet
	Logger     *slog.Logger

	// Skipped collects directories which could not be listed
	Skipped []*ScanError
	Stats   Statistics
}

// Walk visits Root and its subdirectories in DFS manner and sends every regular file
// with a matching extension to fileOut. Subdirectories are visited in lexicographic order.
// Directories are kept on an explicit stack, so the depth of the tree is not limited
// by the goroutine stack. Symbolic links to directories are never followed,
// symbolic links to regular files are emitted with the size of their target.
// Walk returns early only if ctx is cancelled. fileOut is not closed.
// NOTE Skipped and Stats must only be read after Walk returned.
func (wk *Walker) Walk(ctx context.Context, fileOut chan<- FileRecord) error {
	stack := []string{wk.Root}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(wk.Fs, dir)
		if err != nil {
			wk.Stats.SkippedDirectories++
			wk.Skipped = append(wk.Skipped, &ScanError{Kind: UnreadableDirectory, Path: dir, Err: err})
			if isPermissionError(err) {
				wk.logger().Debug("permission denied, skipping directory", "path", dir)
			} else {
				wk.logger().Warn("cannot list directory, skipping", "path", dir, "error", err)
			}
			continue
		}
		wk.Stats.Directories++

		subdirs := make([]string, 0, 8)
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			mode := entry.Mode()

			var info os.FileInfo
			switch {
			case mode.IsDir():
				subdirs = append(subdirs, path)
				continue
			case mode.IsRegular():
				info = entry
			case mode&os.ModeSymlink != 0:
				if !wk.Extensions.Matches(entry.Name()) {
					continue
				}
				target, err := wk.Fs.Stat(path)
				if err != nil || !target.Mode().IsRegular() {
					// broken link or link to a directory
					continue
				}
				info = target
			default:
				// devices, pipes, sockets
				continue
			}

			if !wk.Extensions.Matches(entry.Name()) {
				continue
			}

			size := info.Size()
			if size < 0 {
				size = 0
			}
			wk.Stats.Candidates++

			select {
			case fileOut <- FileRecord{Path: path, Size: uint64(size)}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		// push in reverse order, thus the lexicographically smallest directory is visited next
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

func (wk *Walker) logger() *slog.Logger {
	if wk.Logger == nil {
		return discardLogger
	}
	return wk.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
