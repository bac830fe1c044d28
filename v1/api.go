package v1

import (
	"context"
	"io"
	"slices"

	"github.com/meisterluk/dupimages-go/internals"
)

const VERSION_MAJOR = 1
const VERSION_MINOR = 0
const VERSION_PATCH = 0
const RELEASE_DATE = "2025-06-14"
const LICENSE = "BSD 3-clause"

// FindDuplicates scans opts.Root and returns all groups of files with identical content
func FindDuplicates(ctx context.Context, opts Options) (*Report, error) {
	cfg := internals.ScanConfig{
		Fs:            opts.Fs,
		Root:          opts.Root,
		Workers:       opts.Workers,
		Logger:        opts.Logger,
		ProgressEvery: opts.ProgressEvery,
	}
	if len(opts.Extensions) > 0 {
		cfg.Extensions = internals.NewExtensionSet(opts.Extensions...)
	}
	if opts.HashAlgorithm != "" {
		algo, err := internals.HashAlgorithmFromString(opts.HashAlgorithm)
		if err != nil {
			return nil, err
		}
		cfg.HashAlgorithm = algo
	}
	return internals.Scan(ctx, cfg)
}

// FormatReport returns the text representation of r
func FormatReport(r *Report, opts FormatOptions) string {
	return internals.FormatText(r, opts)
}

// WriteReport writes the text representation of r to out.
// It returns the paths which were substituted in the output.
func WriteReport(out io.Writer, r *Report, opts FormatOptions) ([]*ScanError, error) {
	rw := internals.NewReportWriter(opts)
	err := rw.WriteText(out, r)
	return rw.Degraded, err
}

// WriteReportJSON writes r as JSON to out
func WriteReportJSON(out io.Writer, r *Report) error {
	return internals.WriteJSON(out, r)
}

// SupportedHashAlgorithms lists the names of all hash algorithms
func SupportedHashAlgorithms() []string {
	return internals.SupportedHashAlgorithms()
}

// DefaultExtensions lists the file extensions considered by default
func DefaultExtensions() []string {
	return slices.Clone(internals.DefaultExtensions)
}
