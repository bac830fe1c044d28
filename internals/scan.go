package internals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ScanConfig contains all parameters of one scan.
// Zero values are replaced by defaults in Scan.
type ScanConfig struct {
	// Fs is the filesystem to scan, the OS filesystem if nil
	Fs afero.Fs
	// Root is the directory to scan
	Root string
	// Extensions of image files, DefaultExtensionSet() if nil
	Extensions ExtensionSet
	// HashAlgorithm defaults to DefaultHashAlgo
	HashAlgorithm HashAlgo
	// Workers is the number of concurrent hash units, the number of CPUs if not positive
	Workers int
	// Logger for diagnostic messages, discarded if nil
	Logger *slog.Logger
	// ProgressEvery logs progress after every n hashed files, if positive
	ProgressEvery uint64
}

func (c ScanConfig) withDefaults() ScanConfig {
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	if c.Extensions == nil {
		c.Extensions = DefaultExtensionSet()
	}
	if c.HashAlgorithm == "" {
		c.HashAlgorithm = DefaultHashAlgo
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = discardLogger
	}
	return c
}

// ValidateRoot returns the cleaned absolute path of root
// or a ScanError of kind InvalidRoot if it is no existing directory.
func ValidateRoot(fs afero.Fs, root string) (string, error) {
	if root == "" {
		return "", &ScanError{Kind: InvalidRoot, Path: root, Err: errors.New(`no directory given`)}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &ScanError{Kind: InvalidRoot, Path: root, Err: err}
	}
	info, err := fs.Stat(abs)
	if err != nil {
		return "", &ScanError{Kind: InvalidRoot, Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &ScanError{Kind: InvalidRoot, Path: abs, Err: errors.New(`not a directory`)}
	}
	return abs, nil
}

// Scan walks cfg.Root, hashes all image files and groups them by digest.
// Unreadable directories and files end up in Report.Skipped. An error is only
// returned for an invalid root (before any file is read) or if ctx is cancelled,
// in which case all partial results are discarded.
func Scan(ctx context.Context, cfg ScanConfig) (*Report, error) {
	cfg = cfg.withDefaults()
	algo, err := HashAlgorithmFromString(string(cfg.HashAlgorithm))
	if err != nil {
		return nil, err
	}
	cfg.HashAlgorithm = algo

	root, err := ValidateRoot(cfg.Fs, cfg.Root)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("scanning directory", "root", root, "hash-algorithm", cfg.HashAlgorithm, "workers", cfg.Workers)

	walker := &Walker{Fs: cfg.Fs, Root: root, Extensions: cfg.Extensions, Logger: cfg.Logger}
	hasher := &Hasher{
		Fs:            cfg.Fs,
		Algorithm:     cfg.HashAlgorithm,
		Workers:       cfg.Workers,
		Logger:        cfg.Logger,
		ProgressEvery: cfg.ProgressEvery,
	}

	var hashed []HashedFile
	var unreadable []*ScanError
	records := make(chan FileRecord, 2*cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(records)
		return walker.Walk(gctx, records)
	})
	g.Go(func() error {
		var err error
		hashed, unreadable, err = hasher.HashAll(gctx, records)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf(`scan of '%s' interrupted: %w`, root, err)
	}

	stats := walker.Stats
	stats.Hashed = uint64(len(hashed))
	stats.SkippedFiles = uint64(len(unreadable))
	for _, h := range hashed {
		stats.TotalSize += h.Size
	}

	skipped := make([]*ScanError, 0, len(walker.Skipped)+len(unreadable))
	skipped = append(skipped, walker.Skipped...)
	skipped = append(skipped, unreadable...)

	report := NewReport(root, cfg.HashAlgorithm, hashed, skipped, stats)
	cfg.Logger.Info("scan finished", "stats", stats.String(), "groups", report.GroupCount(),
		"wasted", HumanReadableBytes(report.WastedBytes()))

	return report, nil
}
