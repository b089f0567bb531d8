package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// CommentPrefix marks a line of the library list as a comment
const CommentPrefix = "#"

// ReadLibraryList reads library base names, one per line.
// Surrounding whitespace is stripped before the comment check, so an
// indented "# name" is still a comment. Blank lines are dropped.
// Order is preserved.
func ReadLibraryList(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading library list: %w", err)
	}

	return names, nil
}

// LoadLibraryList reads the library list from a file
func LoadLibraryList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening library list %s: %w", path, err)
	}
	defer f.Close()

	return ReadLibraryList(f)
}
