// Package diff implements the Diff Engine (C9): field-level, header,
// raw-line, char-level, and timing diffs between two requests or
// responses, plus identity/summary helpers.
package diff

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/nullbyte-labs/httpforge/pkg/headers"
	"github.com/nullbyte-labs/httpforge/pkg/timing"
)

// FieldStatus classifies one compared field.
type FieldStatus string

const (
	Unchanged FieldStatus = "unchanged"
	Added     FieldStatus = "added"
	Removed   FieldStatus = "removed"
	Changed   FieldStatus = "changed"
)

// FieldDiff is one field's comparison result.
type FieldDiff struct {
	Name   string
	Status FieldStatus
	Old    string
	New    string
}

// DiffField compares a single named field present/absent on each side.
func DiffField(name string, oldPresent bool, oldVal string, newPresent bool, newVal string) FieldDiff {
	switch {
	case !oldPresent && newPresent:
		return FieldDiff{Name: name, Status: Added, New: newVal}
	case oldPresent && !newPresent:
		return FieldDiff{Name: name, Status: Removed, Old: oldVal}
	case oldVal == newVal:
		return FieldDiff{Name: name, Status: Unchanged, Old: oldVal, New: newVal}
	default:
		return FieldDiff{Name: name, Status: Changed, Old: oldVal, New: newVal}
	}
}

// HeaderDiff compares two header multimaps per §4.9: the key set is the
// union of both sides, and duplicate values for one name are joined with
// ", " in arrival order before comparison, so a header is "changed" whenever
// the joined strings differ — including when the same values arrive in a
// different order.
func HeaderDiff(oldHeaders, newHeaders *headers.MultiMap) []FieldDiff {
	seen := make(map[string]bool)
	var names []string
	for _, k := range oldHeaders.Keys() {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	for _, k := range newHeaders.Keys() {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}

	var out []FieldDiff
	for _, name := range names {
		oldVal := oldHeaders.Joined(name)
		newVal := newHeaders.Joined(name)
		oldPresent := oldHeaders.Has(name)
		newPresent := newHeaders.Has(name)
		out = append(out, DiffField(name, oldPresent, oldVal, newPresent, newVal))
	}
	return out
}

// LineDiff is one line of a raw unified diff result.
type LineDiff struct {
	Kind string // "same", "removed", "added"
	Text string
}

// RawLineDiff computes a line-oriented diff between two raw byte buffers.
// This is NOT an LCS/Myers diff: per §4.9 it zips the two side's lines by
// index and reports "- old"/"+ new" wherever same-index lines differ, or
// "  line" when they match — a straightforward positional comparison, not
// a minimal edit script. difflib.SplitLines is used only for its CRLF/LF
// tolerant line splitting, not its SequenceMatcher.
func RawLineDiff(oldRaw, newRaw []byte) []LineDiff {
	oldLines := difflib.SplitLines(string(oldRaw))
	newLines := difflib.SplitLines(string(newRaw))

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	var out []LineDiff
	for i := 0; i < n; i++ {
		var o, nw string
		var hasO, hasN bool
		if i < len(oldLines) {
			o = strings.TrimRight(oldLines[i], "\r\n")
			hasO = true
		}
		if i < len(newLines) {
			nw = strings.TrimRight(newLines[i], "\r\n")
			hasN = true
		}

		switch {
		case hasO && hasN && o == nw:
			out = append(out, LineDiff{Kind: "same", Text: "  " + o})
		case hasO && hasN:
			out = append(out, LineDiff{Kind: "removed", Text: "- " + o})
			out = append(out, LineDiff{Kind: "added", Text: "+ " + nw})
		case hasO:
			out = append(out, LineDiff{Kind: "removed", Text: "- " + o})
		case hasN:
			out = append(out, LineDiff{Kind: "added", Text: "+ " + nw})
		}
	}
	return out
}

// CharDiff is one positional character difference.
type CharDiff struct {
	Position int
	Old      string
	New      string
}

// CharLevelDiff compares two strings byte-by-byte at matching positions,
// escaping non-printable characters (\r, \n, \t, \0, and every other byte
// outside 0x20..0x7e as \xHH) in the reported values.
func CharLevelDiff(oldS, newS string) []CharDiff {
	n := len(oldS)
	if len(newS) > n {
		n = len(newS)
	}

	var out []CharDiff
	for i := 0; i < n; i++ {
		var o, nw byte
		var hasO, hasN bool
		if i < len(oldS) {
			o = oldS[i]
			hasO = true
		}
		if i < len(newS) {
			nw = newS[i]
			hasN = true
		}
		if hasO && hasN && o == nw {
			continue
		}
		cd := CharDiff{Position: i}
		if hasO {
			cd.Old = escapeChar(o)
		}
		if hasN {
			cd.New = escapeChar(nw)
		}
		out = append(out, cd)
	}
	return out
}

func escapeChar(b byte) string {
	switch b {
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case 0:
		return `\0`
	}
	if b < 0x20 || b >= 0x7f {
		return fmt.Sprintf(`\x%02x`, b)
	}
	return string(rune(b))
}

// TimingDiff is the signed millisecond deltas between two timing.Metrics,
// only populated when both sides collected timing.
type TimingDiff struct {
	Available bool
	TTFBDiff  int64
	TotalDiff int64
}

// DiffTiming compares two timing snapshots; both sides must have nonzero
// Total for the comparison to be meaningful, otherwise Available is false.
func DiffTiming(oldT, newT timing.Metrics) TimingDiff {
	if oldT.Total == 0 || newT.Total == 0 {
		return TimingDiff{}
	}
	return TimingDiff{
		Available: true,
		TTFBDiff:  newT.TTFBMillis() - oldT.TTFBMillis(),
		TotalDiff: newT.TotalMillis() - oldT.TotalMillis(),
	}
}

// Hash returns a fast, non-cryptographic fingerprint of raw bytes, used by
// IsIdentical as a cheap pre-check before a full byte comparison.
func Hash(raw []byte) uint64 {
	return xxhash.Sum64(raw)
}

// IsIdentical reports whether two raw byte buffers are byte-for-byte
// equal, using the xxhash fingerprint as a fast rejection before falling
// back to an exact comparison (a hash match does not by itself prove
// equality).
func IsIdentical(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if Hash(a) != Hash(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Summary is a compact report of how many fields differ, for display
// without enumerating every FieldDiff.
type Summary struct {
	TotalFields int
	Unchanged   int
	Added       int
	Removed     int
	Changed     int
}

// Summarize tallies a FieldDiff slice into a Summary.
func Summarize(fields []FieldDiff) Summary {
	s := Summary{TotalFields: len(fields)}
	for _, f := range fields {
		switch f.Status {
		case Unchanged:
			s.Unchanged++
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Changed:
			s.Changed++
		}
	}
	return s
}
