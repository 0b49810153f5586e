package stats_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/identity"
	"github.com/audi70r/gitcredit/internal/stats"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func author(key, name string) *identity.Author {
	return &identity.Author{Key: key, Name: name}
}

func commit(hash string, when time.Time) *git.Commit {
	return &git.Commit{Hash: hash, ShortHash: hash, AuthorDate: when, CommitterDate: when}
}

func TestFoldSplitRemainderToPrimary(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	authors := []*identity.Author{
		author("a@x.com", "A"),
		author("b@x.com", "B"),
		author("c@x.com", "C"),
	}
	changes := []git.FileChange{
		{FilePath: "main.go", Additions: 7, Deletions: 4},
	}

	agg.Fold(commit("aaa", epoch), authors, changes)
	table := agg.Finalize()

	// floor(7/3)=2 each, remainder 1 to the primary; floor(4/3)=1 each,
	// remainder 1 to the primary.
	wantIns := map[string]int{"a@x.com": 3, "b@x.com": 2, "c@x.com": 2}
	wantDel := map[string]int{"a@x.com": 2, "b@x.com": 1, "c@x.com": 1}

	sumIns, sumDel := 0, 0
	for key, rec := range table.Authors {
		if rec.Insertions != wantIns[key] {
			t.Errorf("%s insertions = %d, want %d", key, rec.Insertions, wantIns[key])
		}
		if rec.Deletions != wantDel[key] {
			t.Errorf("%s deletions = %d, want %d", key, rec.Deletions, wantDel[key])
		}
		sumIns += rec.Insertions
		sumDel += rec.Deletions
	}

	// Conservation: the split sums back to the commit's true totals.
	if sumIns != 7 || sumDel != 4 {
		t.Errorf("credited sum = +%d/-%d, want +7/-4", sumIns, sumDel)
	}
}

func TestFoldCommitCountNotSplit(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	authors := []*identity.Author{author("a@x.com", "A"), author("b@x.com", "B")}
	agg.Fold(commit("aaa", epoch), authors, nil)
	table := agg.Finalize()

	for _, key := range []string{"a@x.com", "b@x.com"} {
		if table.Authors[key].Commits != 1 {
			t.Errorf("%s commits = %d, want 1", key, table.Authors[key].Commits)
		}
	}
}

func TestFoldScenarioThreeCommits(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	alice := author("alice@x.com", "Alice")
	bob := author("bob@x.com", "Bob")
	carol := author("carol@x.com", "Carol")

	// A: root, 10 insertions by Alice.
	agg.Fold(commit("aaa", epoch), []*identity.Author{alice}, []git.FileChange{
		{FilePath: "a.go", Additions: 10},
	})
	// B: 4 insertions, 2 deletions by Bob, co-authored by Alice.
	agg.Fold(commit("bbb", epoch.Add(time.Hour)), []*identity.Author{bob, alice}, []git.FileChange{
		{FilePath: "a.go", Additions: 4, Deletions: 2},
	})
	// C: merge, diffed against first parent only, empty.
	agg.Fold(commit("ccc", epoch.Add(2*time.Hour)), []*identity.Author{carol}, nil)

	table := agg.Finalize()

	tests := []struct {
		key                string
		commits, ins, dels int
	}{
		{"alice@x.com", 2, 12, 1},
		{"bob@x.com", 1, 2, 1},
		{"carol@x.com", 1, 0, 0},
	}
	for _, tc := range tests {
		rec := table.Authors[tc.key]
		if rec == nil {
			t.Fatalf("no contribution record for %s", tc.key)
		}
		if rec.Commits != tc.commits || rec.Insertions != tc.ins || rec.Deletions != tc.dels {
			t.Errorf("%s = {commits: %d, ins: %d, dels: %d}, want {%d, %d, %d}",
				tc.key, rec.Commits, rec.Insertions, rec.Deletions,
				tc.commits, tc.ins, tc.dels)
		}
	}

	if table.TotalCommits != 3 {
		t.Errorf("TotalCommits = %d, want 3", table.TotalCommits)
	}
	if table.TotalInsertions != 14 || table.TotalDeletions != 2 {
		t.Errorf("totals = +%d/-%d, want +14/-2", table.TotalInsertions, table.TotalDeletions)
	}
}

func TestFoldOrderIndependence(t *testing.T) {
	alice := author("alice@x.com", "Alice")
	bob := author("bob@x.com", "Bob")

	type fold struct {
		c       *git.Commit
		authors []*identity.Author
		changes []git.FileChange
	}
	folds := []fold{
		{commit("aaa", epoch), []*identity.Author{alice}, []git.FileChange{{FilePath: "a.go", Additions: 5}}},
		{commit("bbb", epoch.Add(time.Hour)), []*identity.Author{bob, alice}, []git.FileChange{{FilePath: "b.go", Additions: 3, Deletions: 1}}},
		{commit("ccc", epoch.Add(2 * time.Hour)), []*identity.Author{alice, bob}, []git.FileChange{{FilePath: "a.go", Additions: 2, Deletions: 2}}},
	}

	forward := stats.NewAggregator(stats.Scope{})
	for _, f := range folds {
		forward.Fold(f.c, f.authors, f.changes)
	}

	backward := stats.NewAggregator(stats.Scope{})
	for i := len(folds) - 1; i >= 0; i-- {
		backward.Fold(folds[i].c, folds[i].authors, folds[i].changes)
	}

	if diff := cmp.Diff(forward.Finalize(), backward.Finalize()); diff != "" {
		t.Errorf("fold order changed the table (-forward +backward):\n%s", diff)
	}
}

func TestFoldBinaryFilesTouchOnly(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	authors := []*identity.Author{author("a@x.com", "A"), author("b@x.com", "B")}
	changes := []git.FileChange{
		{FilePath: "logo.png", IsBinary: true},
		{FilePath: "tiny.go", Additions: 1},
	}

	agg.Fold(commit("aaa", epoch), authors, changes)
	table := agg.Finalize()

	// Binary file counts as touched for every resolved author but adds no
	// line credit. The 1-insertion file splits to zero for the co-author,
	// so it does not count as touched for them.
	if got := table.Authors["a@x.com"].FilesTouched; got != 2 {
		t.Errorf("primary FilesTouched = %d, want 2", got)
	}
	if got := table.Authors["b@x.com"].FilesTouched; got != 1 {
		t.Errorf("co-author FilesTouched = %d, want 1", got)
	}
	if got := table.Authors["a@x.com"].Insertions; got != 1 {
		t.Errorf("primary insertions = %d, want 1", got)
	}
}

func TestFoldDiffError(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	authors := []*identity.Author{author("a@x.com", "A")}
	agg.FoldDiffError(commit("aaa", epoch), authors, errors.New("unreadable blob"))
	table := agg.Finalize()

	rec := table.Authors["a@x.com"]
	if rec.Commits != 1 || rec.Insertions != 0 || rec.Deletions != 0 {
		t.Errorf("record = %+v, want commit credit only", rec)
	}
	if len(table.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(table.Warnings))
	}
	if table.Warnings[0].Hash != "aaa" {
		t.Errorf("warning hash = %q, want aaa", table.Warnings[0].Hash)
	}
}

func TestFoldPairings(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	alice := author("alice@x.com", "Alice")
	bob := author("bob@x.com", "Bob")

	agg.Fold(commit("aaa", epoch), []*identity.Author{alice, bob}, nil)
	agg.Fold(commit("bbb", epoch.Add(time.Hour)), []*identity.Author{alice}, nil)
	table := agg.Finalize()

	pair := table.Pairings["alice@x.com"]["bob@x.com"]
	if pair == nil || pair.AsDriver != 1 || pair.Total != 1 {
		t.Errorf("alice/bob pairing = %+v, want driver 1 total 1", pair)
	}

	reverse := table.Pairings["bob@x.com"]["alice@x.com"]
	if reverse == nil || reverse.AsDriver != 0 || reverse.Total != 1 {
		t.Errorf("bob/alice pairing = %+v, want driver 0 total 1", reverse)
	}

	solo := table.Pairings["alice@x.com"][stats.SoloKey]
	if solo == nil || solo.Total != 1 {
		t.Errorf("alice solo bucket = %+v, want total 1", solo)
	}
}

func TestFoldTimestamps(t *testing.T) {
	agg := stats.NewAggregator(stats.Scope{})

	alice := author("alice@x.com", "Alice")
	agg.Fold(commit("bbb", epoch.Add(time.Hour)), []*identity.Author{alice}, nil)
	agg.Fold(commit("aaa", epoch), []*identity.Author{alice}, nil)
	table := agg.Finalize()

	rec := table.Authors["alice@x.com"]
	if !rec.FirstCommit.Equal(epoch) {
		t.Errorf("FirstCommit = %v, want %v", rec.FirstCommit, epoch)
	}
	if !rec.LastCommit.Equal(epoch.Add(time.Hour)) {
		t.Errorf("LastCommit = %v, want %v", rec.LastCommit, epoch.Add(time.Hour))
	}
}
