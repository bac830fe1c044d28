package internals

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions lists the image file extensions considered by default
var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "tiff", "tif", "ico", "svg"}

// ExtensionSet is a set of lowercase file extensions without leading dot
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes the given extensions (case, leading dot, surrounding whitespace)
// and returns them as set. Empty items are dropped.
func NewExtensionSet(extensions ...string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

// DefaultExtensionSet returns a fresh set of DefaultExtensions
func DefaultExtensionSet() ExtensionSet {
	return NewExtensionSet(DefaultExtensions...)
}

// Matches tells whether the basename has an extension contained in s.
// A dotfile like ".png" has no extension.
func (s ExtensionSet) Matches(basename string) bool {
	ext := filepath.Ext(basename)
	if len(ext) < 2 || len(ext) == len(basename) {
		return false
	}
	_, ok := s[strings.ToLower(ext[1:])]
	return ok
}

// Sorted returns the extensions in lexicographic order
func (s ExtensionSet) Sorted() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
