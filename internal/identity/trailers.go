package identity

import (
	"regexp"
	"strings"

	"github.com/audi70r/gitcredit/internal/git"
)

var trailerKeyword = regexp.MustCompile(`(?i)^[ \t]*co-authored-by:[ \t]*`)

// CoAuthors scans a commit message for Co-authored-by trailers and returns
// the raw identities they name, in message order. Malformed trailers
// (missing angle brackets, empty name) are skipped, not errored.
func CoAuthors(message string) []git.Author {
	var authors []git.Author

	for _, line := range strings.Split(message, "\n") {
		rest, ok := stripKeyword(line)
		if !ok {
			continue
		}

		lt := strings.LastIndexByte(rest, '<')
		gt := strings.LastIndexByte(rest, '>')
		if lt < 0 || gt < lt {
			continue
		}

		name := strings.TrimSpace(rest[:lt])
		email := strings.TrimSpace(rest[lt+1 : gt])
		if name == "" {
			continue
		}

		authors = append(authors, git.Author{Name: name, Email: email})
	}

	return authors
}

// stripKeyword removes the leading trailer keyword, tolerating the keyword
// being accidentally repeated ("Co-authored-by: Co-authored-by: Alice ...").
func stripKeyword(line string) (string, bool) {
	loc := trailerKeyword.FindStringIndex(line)
	if loc == nil {
		return "", false
	}

	rest := line[loc[1]:]
	for {
		loc = trailerKeyword.FindStringIndex(rest)
		if loc == nil {
			return rest, true
		}
		rest = rest[loc[1]:]
	}
}
