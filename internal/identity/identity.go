// Package identity normalizes raw author strings and co-author trailers
// into canonical author identities.
package identity

import (
	"strings"

	"github.com/audi70r/gitcredit/internal/git"
)

// Author is a canonical identity. Key is the deduplication key; Name is the
// display name first observed for that key.
type Author struct {
	Key  string
	Name string
}

// Resolver maps raw (name, email) pairs to canonical authors. Lookups are
// not safe for concurrent use; resolution happens on the walker goroutine.
type Resolver struct {
	aliases map[string]string
	byKey   map[string]*Author
}

// NewResolver creates a resolver. aliases maps a raw identity string (email
// or name) to the identity it should be folded into.
func NewResolver(aliases map[string]string) *Resolver {
	normalized := make(map[string]string, len(aliases))
	for from, to := range aliases {
		normalized[normalizeKey(from)] = normalizeKey(to)
	}
	return &Resolver{
		aliases: normalized,
		byKey:   make(map[string]*Author),
	}
}

// Resolve returns the ordered, de-duplicated author set for a commit:
// primary author first, then co-authors in message order. The result always
// has at least one entry.
func (r *Resolver) Resolve(c *git.Commit) []*Author {
	var authors []*Author
	seen := make(map[string]bool)

	add := func(name, email string) {
		a := r.lookup(name, email)
		if seen[a.Key] {
			return
		}
		seen[a.Key] = true
		authors = append(authors, a)
	}

	add(c.Author.Name, c.Author.Email)
	for _, co := range CoAuthors(c.Message) {
		add(co.Name, co.Email)
	}

	return authors
}

// Lookup resolves a single raw identity without touching trailers.
func (r *Resolver) Lookup(name, email string) *Author {
	return r.lookup(name, email)
}

func (r *Resolver) lookup(name, email string) *Author {
	key := canonicalKey(name, email)
	if key == "" {
		key = "unknown"
	}
	if target, ok := r.aliases[key]; ok && target != "" {
		key = target
	}

	a, ok := r.byKey[key]
	if !ok {
		a = &Author{Key: key, Name: displayName(name, email)}
		r.byKey[key] = a
	}
	return a
}

// canonicalKey is the lower-cased trimmed email when syntactically valid,
// otherwise the lower-cased trimmed display name.
func canonicalKey(name, email string) string {
	email = strings.TrimSpace(email)
	if validEmail(email) {
		return strings.ToLower(email)
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validEmail(s string) bool {
	if strings.ContainsAny(s, " \t") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.IndexByte(s[at+1:], '@') < 0
}

func displayName(name, email string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(email)
	}
	if name == "" {
		name = "Unknown"
	}
	return transliterate(name)
}

var transliterations = map[rune]string{
	'Ä': "Ae",
	'ä': "ae",
	'Ö': "Oe",
	'ö': "oe",
	'Ü': "Ue",
	'ü': "ue",
	'ß': "ss",
}

// transliterate folds German umlauts so names render on terminals without
// full unicode fonts and sort predictably.
func transliterate(name string) string {
	var b strings.Builder
	for _, r := range name {
		if repl, ok := transliterations[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
