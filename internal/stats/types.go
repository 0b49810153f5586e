package stats

import "time"

// Scope records the traversal parameters a table was built with, so a
// result can be reproduced or rebuilt with different filters.
type Scope struct {
	RepoPath   string
	Ref        string
	Since      time.Time
	Until      time.Time
	PathPrefix string
}

// Contribution accumulates totals for one canonical author.
type Contribution struct {
	Key          string
	Name         string
	Commits      int
	Insertions   int
	Deletions    int
	FilesTouched int
	FirstCommit  time.Time
	LastCommit   time.Time
}

// Modifications is the line credit for one (author, file) pair. Binary marks
// files whose line counts are undefined; they still count as touched.
type Modifications struct {
	Insertions int
	Deletions  int
	Binary     bool
}

// Pairing counts commits shared between two authors. AsDriver counts the
// commits where the row author was the primary author.
type Pairing struct {
	AsDriver int
	Total    int
}

// SoloKey buckets commits that have no co-authors in the pairing matrix.
const SoloKey = "(solo)"

// Warning records a recoverable problem encountered during a build, such as
// a commit whose diff could not be computed.
type Warning struct {
	Hash    string
	Message string
}

// Table is the completed aggregate for one traversal. It is built by an
// Aggregator and handed off read-only to the presentation layer; changing
// scope means rebuilding, never mutating in place.
type Table struct {
	Scope           Scope
	TotalCommits    int
	TotalInsertions int
	TotalDeletions  int

	// Authors maps canonical key to the author's totals.
	Authors map[string]*Contribution

	// Files maps canonical key to per-file credit for that author.
	Files map[string]map[string]*Modifications

	// Pairings maps canonical key to shared-commit counts per partner.
	Pairings map[string]map[string]*Pairing

	Warnings []Warning
}

// NewTable creates an empty table for the given scope.
func NewTable(scope Scope) *Table {
	return &Table{
		Scope:    scope,
		Authors:  make(map[string]*Contribution),
		Files:    make(map[string]map[string]*Modifications),
		Pairings: make(map[string]map[string]*Pairing),
	}
}
