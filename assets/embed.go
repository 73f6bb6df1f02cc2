// Package assets ships the default Word-mode dictionary inside the binary.
package assets

import (
	"bufio"
	"io"
	"strings"

	_ "embed"
)

//go:embed words.txt
var wordsTxt string

// ParseLines reads one entry per line, trimmed. Blank lines and lines
// starting with '#' are skipped. Entries are returned as written.
func ParseLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary entries.
func WordList() ([]string, error) {
	return ParseLines(strings.NewReader(wordsTxt))
}
