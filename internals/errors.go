package internals

import (
	"errors"
	"fmt"
)

// ErrorKind classifies problems encountered while scanning a tree
type ErrorKind int

const (
	// UnreadableDirectory means a directory could not be listed. The walk continues.
	UnreadableDirectory ErrorKind = iota + 1
	// UnreadableFile means a file could not be read for hashing. It is excluded from grouping.
	UnreadableFile
	// InvalidRoot means the base directory does not exist or is no directory. Nothing is scanned.
	InvalidRoot
	// FormattingDegradation means a value could only be displayed with substitutions.
	FormattingDegradation
)

func (k ErrorKind) String() string {
	switch k {
	case UnreadableDirectory:
		return `unreadable directory`
	case UnreadableFile:
		return `unreadable file`
	case InvalidRoot:
		return `invalid root`
	case FormattingDegradation:
		return `formatting degradation`
	}
	return fmt.Sprintf(`error kind %d`, int(k))
}

// ErrInvalidRoot matches any ScanError of kind InvalidRoot with errors.Is
var ErrInvalidRoot = errors.New(`invalid root`)

// ErrFileChanged indicates that the number of bytes hashed differs from the size seen during the walk
var ErrFileChanged = errors.New(`file changed during scan`)

// ScanError annotates an error with the path it occured at and its kind
type ScanError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf(`%s '%s'`, e.Kind, e.Path)
	}
	return fmt.Sprintf(`%s '%s': %s`, e.Kind, e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is reports InvalidRoot errors as ErrInvalidRoot
func (e *ScanError) Is(target error) bool {
	return target == ErrInvalidRoot && e.Kind == InvalidRoot
}
