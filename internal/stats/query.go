package stats

import (
	"sort"
	"strings"
)

// SortKey selects which column a leaderboard is ranked by.
type SortKey int

const (
	ByCommits SortKey = iota
	ByInsertions
	ByDeletions
	ByFiles
)

func (k SortKey) String() string {
	switch k {
	case ByCommits:
		return "commits"
	case ByInsertions:
		return "insertions"
	case ByDeletions:
		return "deletions"
	case ByFiles:
		return "files"
	default:
		return "commits"
	}
}

func (k SortKey) value(c *Contribution) int {
	switch k {
	case ByCommits:
		return c.Commits
	case ByInsertions:
		return c.Insertions
	case ByDeletions:
		return c.Deletions
	case ByFiles:
		return c.FilesTouched
	default:
		return c.Commits
	}
}

// Leaderboard returns contributions sorted by key, descending unless
// ascending is set, with ties broken by canonical key ascending. filter
// narrows the result to authors whose display name contains the substring,
// case-insensitively. The underlying totals are never touched.
func (t *Table) Leaderboard(key SortKey, ascending bool, filter string) []*Contribution {
	filter = strings.ToLower(filter)

	authors := make([]*Contribution, 0, len(t.Authors))
	for _, rec := range t.Authors {
		if filter != "" && !strings.Contains(strings.ToLower(rec.Name), filter) {
			continue
		}
		authors = append(authors, rec)
	}

	sort.Slice(authors, func(i, j int) bool {
		vi, vj := key.value(authors[i]), key.value(authors[j])
		if vi != vj {
			if ascending {
				return vi < vj
			}
			return vi > vj
		}
		return authors[i].Key < authors[j].Key
	})

	return authors
}

// FileCredit is one row of an author's per-file breakdown.
type FileCredit struct {
	Path       string
	Insertions int
	Deletions  int
	Binary     bool
}

// AuthorFiles returns the per-file breakdown for one author, sorted by
// total line credit descending, ties broken by path ascending.
func (t *Table) AuthorFiles(key string) []FileCredit {
	files := make([]FileCredit, 0, len(t.Files[key]))
	for path, mods := range t.Files[key] {
		files = append(files, FileCredit{
			Path:       path,
			Insertions: mods.Insertions,
			Deletions:  mods.Deletions,
			Binary:     mods.Binary,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		ti := files[i].Insertions + files[i].Deletions
		tj := files[j].Insertions + files[j].Deletions
		if ti != tj {
			return ti > tj
		}
		return files[i].Path < files[j].Path
	})

	return files
}

// PathChurn is one row of the repository-wide hot-paths breakdown: a file's
// line credit summed across every author, plus how many distinct authors
// touched it.
type PathChurn struct {
	Path       string
	Insertions int
	Deletions  int
	Authors    int
	Binary     bool
}

// HotPaths aggregates per-file credit across all authors, sorted by total
// line churn descending, ties broken by path ascending.
func (t *Table) HotPaths() []PathChurn {
	byPath := make(map[string]*PathChurn)
	for _, files := range t.Files {
		for path, mods := range files {
			pc, ok := byPath[path]
			if !ok {
				pc = &PathChurn{Path: path}
				byPath[path] = pc
			}
			pc.Insertions += mods.Insertions
			pc.Deletions += mods.Deletions
			pc.Authors++
			if mods.Binary {
				pc.Binary = true
			}
		}
	}

	paths := make([]PathChurn, 0, len(byPath))
	for _, pc := range byPath {
		paths = append(paths, *pc)
	}

	sort.Slice(paths, func(i, j int) bool {
		ti := paths[i].Insertions + paths[i].Deletions
		tj := paths[j].Insertions + paths[j].Deletions
		if ti != tj {
			return ti > tj
		}
		return paths[i].Path < paths[j].Path
	})

	return paths
}

// PairEntry is one row of an author's pairing breakdown. Partner is the
// display name; the solo bucket keeps its marker name.
type PairEntry struct {
	Partner  string
	Key      string
	AsDriver int
	Total    int
}

// Pairs returns who an author shared commits with, sorted by total shared
// commits descending, ties broken by partner key ascending.
func (t *Table) Pairs(key string) []PairEntry {
	entries := make([]PairEntry, 0, len(t.Pairings[key]))
	for partner, p := range t.Pairings[key] {
		name := partner
		if partner != SoloKey {
			if rec, ok := t.Authors[partner]; ok {
				name = rec.Name
			}
		}
		entries = append(entries, PairEntry{
			Partner:  name,
			Key:      partner,
			AsDriver: p.AsDriver,
			Total:    p.Total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}
