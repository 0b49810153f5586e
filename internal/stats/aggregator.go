package stats

import (
	"sort"
	"sync"

	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/identity"
)

// Aggregator folds per-commit diff results into a statistics table. Folds
// are purely additive, so fold order never affects the final table and
// concurrent folding from diff workers is safe.
type Aggregator struct {
	mu    sync.Mutex
	table *Table
}

// NewAggregator creates an aggregator building a fresh table.
func NewAggregator(scope Scope) *Aggregator {
	return &Aggregator{table: NewTable(scope)}
}

// Fold credits one commit to its resolved author set. The commit's line
// totals are split floor(total/N) per author with the remainder going to
// the primary author, keeping the global sum exactly equal to the commit's
// true total. Commit counts are not split: every resolved author gets +1.
func (a *Aggregator) Fold(c *git.Commit, authors []*identity.Author, changes []git.FileChange) {
	if len(authors) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.creditCommit(c, authors)

	n := len(authors)

	var ins, del int
	for _, fc := range changes {
		if fc.IsBinary {
			continue
		}
		ins += fc.Additions
		del += fc.Deletions
	}
	a.table.TotalInsertions += ins
	a.table.TotalDeletions += del

	for i, au := range authors {
		rec := a.contribution(au)
		rec.Insertions += ins / n
		rec.Deletions += del / n
		if i == 0 {
			rec.Insertions += ins % n
			rec.Deletions += del % n
		}
	}

	// Per-file credit uses the same split independently per file. A file
	// counts as touched for an author only when their split is non-zero,
	// or when the file is binary.
	for _, fc := range changes {
		if fc.IsBinary {
			for _, au := range authors {
				a.modifications(au, fc.FilePath).Binary = true
			}
			continue
		}

		for i, au := range authors {
			mi := fc.Additions / n
			md := fc.Deletions / n
			if i == 0 {
				mi += fc.Additions % n
				md += fc.Deletions % n
			}
			if mi == 0 && md == 0 {
				continue
			}

			mods := a.modifications(au, fc.FilePath)
			mods.Insertions += mi
			mods.Deletions += md
		}
	}
}

// FoldDiffError credits a commit whose diff could not be computed. The
// commit still counts toward commit totals; the failure is recorded as a
// warning instead of aborting the build.
func (a *Aggregator) FoldDiffError(c *git.Commit, authors []*identity.Author, err error) {
	if len(authors) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.creditCommit(c, authors)
	a.table.Warnings = append(a.table.Warnings, Warning{
		Hash:    c.Hash,
		Message: "diff unavailable: " + err.Error(),
	})
}

// creditCommit handles the credit that does not depend on the diff: commit
// counts, first/last timestamps and the pairing matrix.
func (a *Aggregator) creditCommit(c *git.Commit, authors []*identity.Author) {
	a.table.TotalCommits++

	for _, au := range authors {
		rec := a.contribution(au)
		rec.Commits++
		if rec.FirstCommit.IsZero() || c.AuthorDate.Before(rec.FirstCommit) {
			rec.FirstCommit = c.AuthorDate
		}
		if c.AuthorDate.After(rec.LastCommit) {
			rec.LastCommit = c.AuthorDate
		}
	}

	primary := authors[0]
	if len(authors) == 1 {
		p := a.pairing(primary.Key, SoloKey)
		p.AsDriver++
		p.Total++
		return
	}
	for _, nav := range authors[1:] {
		d := a.pairing(primary.Key, nav.Key)
		d.AsDriver++
		d.Total++

		r := a.pairing(nav.Key, primary.Key)
		r.Total++
	}
}

// Finalize computes derived fields and hands off the table. The aggregator
// must not be used after finalizing.
func (a *Aggregator) Finalize() *Table {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key, rec := range a.table.Authors {
		rec.FilesTouched = len(a.table.Files[key])
	}

	// Warnings arrive in worker-completion order, which varies between
	// runs of the same scope. Sort so repeated builds are identical.
	sort.Slice(a.table.Warnings, func(i, j int) bool {
		return a.table.Warnings[i].Hash < a.table.Warnings[j].Hash
	})

	return a.table
}

func (a *Aggregator) contribution(au *identity.Author) *Contribution {
	rec, ok := a.table.Authors[au.Key]
	if !ok {
		rec = &Contribution{Key: au.Key, Name: au.Name}
		a.table.Authors[au.Key] = rec
	}
	return rec
}

func (a *Aggregator) modifications(au *identity.Author, path string) *Modifications {
	files, ok := a.table.Files[au.Key]
	if !ok {
		files = make(map[string]*Modifications)
		a.table.Files[au.Key] = files
	}
	mods, ok := files[path]
	if !ok {
		mods = &Modifications{}
		files[path] = mods
	}
	return mods
}

func (a *Aggregator) pairing(key, partner string) *Pairing {
	pairs, ok := a.table.Pairings[key]
	if !ok {
		pairs = make(map[string]*Pairing)
		a.table.Pairings[key] = pairs
	}
	p, ok := pairs[partner]
	if !ok {
		p = &Pairing{}
		pairs[partner] = p
	}
	return p
}
