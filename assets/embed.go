// Package assets bundles the fallback word list and the word bank migrations.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the bundled fallback words, lowercased.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Migrations returns the word bank SQL files rooted at their directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
