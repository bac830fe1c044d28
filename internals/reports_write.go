package internals

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultDigestLength is the number of hexadecimal digest characters shown per group
const DefaultDigestLength = 16

const lineWidth = 80

// FormatOptions configures how a Report is rendered
type FormatOptions struct {
	// HomeDir abbreviates paths below it as "~/…", if non-empty
	HomeDir string
	// ASCII restricts output to ASCII characters
	ASCII bool
	// DigestLength is the number of hex characters shown, DefaultDigestLength if zero
	DigestLength int
}

// ReportWriter renders a Report as text. Values which cannot be displayed
// faithfully are substituted and recorded in Degraded.
type ReportWriter struct {
	opts     FormatOptions
	Degraded []*ScanError
}

// NewReportWriter creates a ReportWriter with the given options
func NewReportWriter(opts FormatOptions) *ReportWriter {
	if opts.DigestLength == 0 {
		opts.DigestLength = DefaultDigestLength
	}
	return &ReportWriter{opts: opts}
}

// FormatText renders r as text with the given options
func FormatText(r *Report, opts FormatOptions) string {
	var b strings.Builder
	NewReportWriter(opts).WriteText(&b, r)
	return b.String()
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return fmt.Sprintf(`%d %s`, count, singular)
	}
	return fmt.Sprintf(`%d %s`, count, pluralForm)
}

// displayPath abbreviates and sanitizes path p for output
func (rw *ReportWriter) displayPath(p string) string {
	shown := p
	if rw.opts.HomeDir != "" {
		rel, err := filepath.Rel(rw.opts.HomeDir, p)
		if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			shown = "~" + string(filepath.Separator) + rel
		}
	}

	result, degraded := displayString(shown, rw.opts.ASCII)
	if degraded {
		rw.Degraded = append(rw.Degraded, &ScanError{
			Kind: FormattingDegradation,
			Path: p,
			Err:  fmt.Errorf(`displayed as %q`, result),
		})
	}
	return result
}

func (rw *ReportWriter) text(s string) string {
	result, _ := displayString(s, rw.opts.ASCII)
	return result
}

func (rw *ReportWriter) rule(heavy bool) string {
	switch {
	case heavy:
		return strings.Repeat("=", lineWidth)
	case rw.opts.ASCII:
		return strings.Repeat("-", lineWidth)
	}
	return strings.Repeat("─", lineWidth)
}

// WriteText writes the text representation of r to out.
// It returns the first write error; display problems never cause an error.
func (rw *ReportWriter) WriteText(out io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Scanned %s: %s\n", rw.displayPath(r.Root), r.Stats.String())

	if r.GroupCount() == 0 {
		b.WriteString("\nNo duplicate images found!\n")
	} else {
		fmt.Fprintf(&b, "Found %s in %s.\n",
			plural(r.DuplicateCount(), "duplicate", "duplicates"),
			plural(r.GroupCount(), "group", "groups"),
		)

		for i := range r.Groups {
			g := &r.Groups[i]
			b.WriteString("\n")
			b.WriteString(rw.rule(false) + "\n")
			fmt.Fprintf(&b, "Group %d: %d copies (%s each)\n", i+1, len(g.Members), HumanReadableBytes(g.Size))
			fmt.Fprintf(&b, "Wasted space: %s\n", HumanReadableBytes(g.WastedBytes()))
			fmt.Fprintf(&b, "Hash: %s\n", g.Digest.Short(rw.opts.DigestLength))
			b.WriteString(rw.rule(false) + "\n")
			for j, member := range g.Members {
				marker := "[duplicate]"
				if j == 0 {
					marker = "[original] "
				}
				fmt.Fprintf(&b, "  %s %s\n", marker, rw.displayPath(member.Path))
			}
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped %s:\n", plural(len(r.Skipped), "entry", "entries"))
		for _, s := range r.Skipped {
			reason := ""
			if s.Err != nil {
				reason = ": " + rw.text(rootCause(s.Err))
			}
			fmt.Fprintf(&b, "  [%s] %s%s\n", s.Kind, rw.displayPath(s.Path), reason)
		}
	}

	if len(rw.Degraded) > 0 {
		fmt.Fprintf(&b, "\nNote: %s contain characters which cannot be displayed and were substituted.\n",
			plural(len(rw.Degraded), "path", "paths"))
	}

	b.WriteString("\n" + rw.rule(true) + "\n")
	fmt.Fprintf(&b, "Total wasted disk space: %s\n", HumanReadableBytes(r.WastedBytes()))
	b.WriteString(rw.rule(true) + "\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// rootCause strips the path of *fs.PathError messages, the path is printed anyway
func rootCause(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// JSONGroup is the JSON representation of a DuplicateGroup
type JSONGroup struct {
	Digest      string   `json:"digest"`
	Size        uint64   `json:"size"`
	WastedBytes uint64   `json:"wasted-bytes"`
	Keeper      string   `json:"keeper"`
	Duplicates  []string `json:"duplicates"`
}

// JSONSkipped is the JSON representation of a skipped path
type JSONSkipped struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONReport is the JSON representation of a Report
type JSONReport struct {
	Root           string        `json:"root"`
	HashAlgorithm  string        `json:"hash-algorithm"`
	GroupCount     int           `json:"group-count"`
	DuplicateCount int           `json:"duplicate-count"`
	WastedBytes    uint64        `json:"wasted-bytes"`
	Groups         []JSONGroup   `json:"groups"`
	Skipped        []JSONSkipped `json:"skipped"`
	Statistics     Statistics    `json:"statistics"`
}

// ToJSON converts r into its JSON representation.
// Paths are kept absolute; invalid UTF-8 is replaced by encoding/json.
func (r *Report) ToJSON() JSONReport {
	data := JSONReport{
		Root:           r.Root,
		HashAlgorithm:  string(r.HashAlgorithm),
		GroupCount:     r.GroupCount(),
		DuplicateCount: r.DuplicateCount(),
		WastedBytes:    r.WastedBytes(),
		Groups:         make([]JSONGroup, 0, len(r.Groups)),
		Skipped:        make([]JSONSkipped, 0, len(r.Skipped)),
		Statistics:     r.Stats,
	}
	for i := range r.Groups {
		g := &r.Groups[i]
		dups := make([]string, 0, len(g.Members)-1)
		for _, m := range g.Duplicates() {
			dups = append(dups, m.Path)
		}
		data.Groups = append(data.Groups, JSONGroup{
			Digest:      g.Digest.Hex(),
			Size:        g.Size,
			WastedBytes: g.WastedBytes(),
			Keeper:      g.Keeper().Path,
			Duplicates:  dups,
		})
	}
	for _, s := range r.Skipped {
		msg := ""
		if s.Err != nil {
			msg = s.Err.Error()
		}
		data.Skipped = append(data.Skipped, JSONSkipped{Kind: s.Kind.String(), Path: s.Path, Error: msg})
	}
	return data
}

// WriteJSON writes r as indented JSON to out
func WriteJSON(out io.Writer, r *Report) error {
	jsonRepr, err := json.MarshalIndent(r.ToJSON(), "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(jsonRepr, '\n'))
	return err
}
