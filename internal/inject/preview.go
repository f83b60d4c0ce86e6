package inject

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

const contextLines = 3

// Diff describes the injection as a unified diff with a single hunk.
func (r *Result) Diff() *diff.FileDiff {
	orig := r.Original
	lines := splitLines(orig)

	line := bytes.Count(orig[:r.InsertAt], []byte("\n"))
	lineStart := bytes.LastIndexByte(orig[:r.InsertAt], '\n') + 1
	lineEnd := len(orig)
	if i := bytes.IndexByte(orig[r.InsertAt:], '\n'); i >= 0 {
		lineEnd = r.InsertAt + i
	}

	// The line holding the closing delimiter is split around the insertion.
	removed := []string{string(orig[lineStart:lineEnd])}
	added := []string{string(orig[lineStart:r.InsertAt])}
	added = append(added, strings.Split(r.Method, "\n")...)
	added = append(added, string(orig[r.InsertAt:lineEnd]))

	var leading, trailing []string
	for len(removed) > 0 && len(added) > 0 && removed[0] == added[0] {
		leading = append(leading, removed[0])
		removed, added = removed[1:], added[1:]
	}
	for len(removed) > 0 && len(added) > 0 && removed[len(removed)-1] == added[len(added)-1] {
		trailing = append([]string{removed[len(removed)-1]}, trailing...)
		removed, added = removed[:len(removed)-1], added[:len(added)-1]
	}

	first := max(0, line-contextLines)
	last := min(len(lines), line+1+contextLines)

	var body bytes.Buffer
	writeLines(&body, ' ', lines[first:line])
	writeLines(&body, ' ', leading)
	writeLines(&body, '-', removed)
	writeLines(&body, '+', added)
	writeLines(&body, ' ', trailing)
	if line+1 < last {
		writeLines(&body, ' ', lines[line+1:last])
	}

	unchanged := (line - first) + len(leading) + len(trailing) + max(0, last-line-1)
	hunk := &diff.Hunk{
		OrigStartLine: int32(first + 1),
		OrigLines:     int32(unchanged + len(removed)),
		NewStartLine:  int32(first + 1),
		NewLines:      int32(unchanged + len(added)),
		Body:          body.Bytes(),
	}

	return &diff.FileDiff{
		OrigName: "a/" + diffName(r.Path),
		NewName:  "b/" + diffName(r.OutputPath),
		Hunks:    []*diff.Hunk{hunk},
	}
}

// Preview renders the injection as unified diff text.
func (r *Result) Preview() ([]byte, error) {
	return diff.PrintFileDiff(r.Diff())
}

func diffName(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}

func splitLines(text []byte) []string {
	lines := strings.Split(string(text), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeLines(buf *bytes.Buffer, prefix byte, lines []string) {
	for _, l := range lines {
		buf.WriteByte(prefix)
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
}
