package internals

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HumanReadableBytes scales count to B, KB, MB, GB or TB (1024-based) with two decimals
func HumanReadableBytes(count uint64) string {
	size := float64(count)
	units := []string{"B", "KB", "MB", "GB"}
	for _, unit := range units {
		if size < 1024 {
			return fmt.Sprintf(`%.02f %s`, size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf(`%.02f TB`, size)
}

// isPermissionError determines whether the given error indicates a permission error
func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission)
}

// displayString makes s safe for a line-based terminal report.
// Invalid UTF-8 sequences become U+FFFD, control characters are
// written as \xNN escapes. In ASCII mode, diacritics are stripped
// and remaining non-ASCII runes become '?'.
// The boolean reports whether any information was lost or escaped.
func displayString(s string, ascii bool) (string, bool) {
	degraded := false
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
		degraded = true
	}

	if ascii {
		s = stripDiacritics(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02X`, r)
			degraded = true
		case r == utf8.RuneError:
			if ascii {
				b.WriteRune('?')
			} else {
				b.WriteRune(r)
			}
			degraded = true
		case ascii && r > unicode.MaxASCII:
			b.WriteRune('?')
			degraded = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), degraded
}

// stripDiacritics decomposes s and removes nonspacing marks, thus "Ĉaféé" becomes "Cafee"
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
