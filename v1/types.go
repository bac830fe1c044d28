package v1

import (
	"log/slog"

	"github.com/meisterluk/dupimages-go/internals"
	"github.com/spf13/afero"
)

type Report = internals.Report
type DuplicateGroup = internals.DuplicateGroup
type FileRecord = internals.FileRecord
type Digest = internals.Digest
type ScanError = internals.ScanError
type ErrorKind = internals.ErrorKind
type Statistics = internals.Statistics
type FormatOptions = internals.FormatOptions

const (
	UnreadableDirectory   = internals.UnreadableDirectory
	UnreadableFile        = internals.UnreadableFile
	InvalidRoot           = internals.InvalidRoot
	FormattingDegradation = internals.FormattingDegradation
)

// ErrInvalidRoot is matched by errors.Is if the directory to scan is not usable
var ErrInvalidRoot = internals.ErrInvalidRoot

// Options for FindDuplicates. Only Root is required.
type Options struct {
	// Fs defaults to the OS filesystem
	Fs afero.Fs
	// Root is the directory to scan
	Root string
	// Extensions defaults to DefaultExtensions()
	Extensions []string
	// HashAlgorithm defaults to "md5"
	HashAlgorithm string
	// Workers defaults to the number of CPUs
	Workers int
	// Logger defaults to discarding all messages
	Logger *slog.Logger
	// ProgressEvery logs a message after every n hashed files, never if zero
	ProgressEvery uint64
}
