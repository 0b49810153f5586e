package git

import (
	"container/heap"
	"context"
	"fmt"
	"time"
)

// Filters narrow which commits the walker emits. Zero values disable a
// filter. Commits outside the date range are skipped but still traversed
// through, so history older than Since does not cut off reachability.
type Filters struct {
	Since time.Time
	Until time.Time
}

func (f Filters) match(c *Commit) bool {
	if !f.Since.IsZero() && c.AuthorDate.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && c.AuthorDate.After(f.Until) {
		return false
	}
	return true
}

// Walk enumerates every commit reachable from start exactly once, in
// reverse-chronological topological order: a commit is emitted only after
// all of its children in the traversal have been emitted. Among ready
// commits the newest committer date goes first.
//
// The visited set is owned by this call, so independent walks never share
// state. A cycle in the commit graph is reported as ErrCorruptHistory
// instead of looping. Cancellation is checked between commits.
func Walk(
	ctx context.Context,
	src Source,
	start string,
	filters Filters,
	onProgress func(ScanProgress),
	onCommit func(*Commit) error,
) error {
	records, childEdges, err := collect(ctx, src, start, onProgress)
	if err != nil {
		return err
	}

	// Kahn's algorithm over the reachable subgraph. Only commits whose
	// children have all been emitted are ready; the start commit is the
	// only one with no children.
	ready := &commitHeap{}
	heap.Init(ready)
	heap.Push(ready, records[start])

	emitted := make(map[string]bool, len(records))
	walked := 0
	for ready.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		c := heap.Pop(ready).(*Commit)
		if emitted[c.Hash] {
			return fmt.Errorf("%w: revisited commit %s", ErrCorruptHistory, c.Hash)
		}
		emitted[c.Hash] = true

		if filters.match(c) {
			walked++
			if onProgress != nil {
				onProgress(ScanProgress{
					CommitsWalked: walked,
					TotalEstimate: len(records),
					CurrentHash:   c.ShortHash,
				})
			}
			if err := onCommit(c); err != nil {
				return err
			}
		}

		for _, parent := range c.Parents {
			childEdges[parent]--
			if childEdges[parent] == 0 {
				heap.Push(ready, records[parent])
			}
		}
	}

	// Nodes that never became ready can only mean a cycle, which a sane
	// object store cannot produce.
	if len(emitted) != len(records) {
		return fmt.Errorf("%w: commit graph contains a cycle", ErrCorruptHistory)
	}

	if onProgress != nil {
		onProgress(ScanProgress{
			CommitsWalked: walked,
			TotalEstimate: len(records),
			Done:          true,
		})
	}

	return nil
}

// collect reads metadata for every commit reachable from start and counts,
// per commit, how many children point at it within the reachable set.
// Progress is reported per commit read, so callers see movement before the
// first emission on large histories.
func collect(
	ctx context.Context,
	src Source,
	start string,
	onProgress func(ScanProgress),
) (map[string]*Commit, map[string]int, error) {
	records := make(map[string]*Commit)
	childEdges := make(map[string]int)

	queue := []string{start}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		hash := queue[0]
		queue = queue[1:]
		if _, seen := records[hash]; seen {
			continue
		}

		c, err := src.Metadata(hash)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptHistory, hash, err)
		}
		records[hash] = c

		if onProgress != nil {
			onProgress(ScanProgress{
				TotalEstimate: len(records),
				CurrentHash:   c.ShortHash,
				Collecting:    true,
			})
		}

		for _, parent := range c.Parents {
			childEdges[parent]++
			queue = append(queue, parent)
		}
	}

	return records, childEdges, nil
}

// commitHeap orders ready commits newest-first, breaking ties by hash so
// traversal order is deterministic.
type commitHeap []*Commit

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(i, j int) bool {
	if !h[i].CommitterDate.Equal(h[j].CommitterDate) {
		return h[i].CommitterDate.After(h[j].CommitterDate)
	}
	return h[i].Hash < h[j].Hash
}

func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commitHeap) Push(x any) {
	*h = append(*h, x.(*Commit))
}

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
