// Package engine orchestrates a statistics build: walking commits,
// resolving identities, fanning diff computation out to a worker pool and
// folding the results into a table.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/identity"
	"github.com/audi70r/gitcredit/internal/stats"
)

// Options configure a single build.
type Options struct {
	// Ref is the starting reference; empty means the repository head.
	Ref string

	Since      time.Time
	Until      time.Time
	PathPrefix string

	// Aliases folds raw identities into canonical ones (config file).
	Aliases map[string]string

	// Workers bounds the diff worker pool; 0 means one per CPU.
	Workers int

	OnProgress func(git.ScanProgress)
}

// Build walks the repository and aggregates contribution statistics into a
// fresh table. It either returns a complete table or an error; a failed or
// cancelled build publishes nothing. Cancellation surfaces as ctx.Err(),
// distinct from repository errors.
//
// The walker is sequential, but per-commit diffs are independent, so they
// run on a bounded pool and fold in arrival order. That is safe because
// the fold is purely additive and each commit's split depends only on its
// own totals.
func Build(ctx context.Context, src git.Source, repoPath string, opts Options) (*stats.Table, error) {
	start, err := src.ResolveStart(opts.Ref)
	if err != nil {
		return nil, err
	}

	scope := stats.Scope{
		RepoPath:   repoPath,
		Ref:        opts.Ref,
		Since:      opts.Since,
		Until:      opts.Until,
		PathPrefix: opts.PathPrefix,
	}
	agg := stats.NewAggregator(scope)
	resolver := identity.NewResolver(opts.Aliases)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	logrus.WithFields(logrus.Fields{
		"start":   start,
		"workers": workers,
	}).Debug("starting build")

	var wg sync.WaitGroup
	filters := git.Filters{Since: opts.Since, Until: opts.Until}

	walkErr := git.Walk(ctx, src, start, filters, opts.OnProgress, func(c *git.Commit) error {
		// Identity resolution stays on the walker goroutine; the
		// resolver's table is not safe for concurrent writes.
		authors := resolver.Resolve(c)

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			foldCommit(src, agg, c, authors, opts.PathPrefix)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
		return nil
	})

	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := agg.Finalize()
	logrus.WithFields(logrus.Fields{
		"commits":  table.TotalCommits,
		"authors":  len(table.Authors),
		"warnings": len(table.Warnings),
	}).Debug("build complete")

	return table, nil
}

// foldCommit computes one commit's diff and folds it into the aggregate.
// Merge commits are diffed against their first parent only, so merged-in
// work is not double counted. A failed diff downgrades the commit to
// commit-count credit with a warning.
func foldCommit(
	src git.Source,
	agg *stats.Aggregator,
	c *git.Commit,
	authors []*identity.Author,
	pathPrefix string,
) {
	changes, err := src.DiffAgainstParent(c.Hash, 0)
	if err != nil {
		logrus.WithField("commit", c.ShortHash).WithError(err).Debug("diff unavailable")
		agg.FoldDiffError(c, authors, err)
		return
	}

	if pathPrefix != "" {
		changes = filterByPrefix(changes, pathPrefix)
		if len(changes) == 0 {
			// Commit touches nothing in scope.
			return
		}
	}

	agg.Fold(c, authors, changes)
}

func filterByPrefix(changes []git.FileChange, prefix string) []git.FileChange {
	filtered := changes[:0:0]
	for _, fc := range changes {
		if strings.HasPrefix(fc.FilePath, prefix) {
			filtered = append(filtered, fc)
		}
	}
	return filtered
}
