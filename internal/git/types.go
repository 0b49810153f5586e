package git

import "time"

// Commit holds the metadata of a single commit as read from the repository.
type Commit struct {
	Hash          string
	ShortHash     string
	Author        Author
	Committer     Author
	AuthorDate    time.Time
	CommitterDate time.Time
	Parents       []string
	Message       string
}

// Author is a raw name+email pair as recorded on a commit.
type Author struct {
	Name  string
	Email string
}

// FileChange represents the line changes of a single file in a commit.
type FileChange struct {
	FilePath  string
	Additions int
	Deletions int
	IsBinary  bool
}

// ScanProgress reports traversal progress. Collecting marks the first
// phase, where reachable commits are still being counted and TotalEstimate
// grows; afterwards it is fixed and CommitsWalked advances toward it.
type ScanProgress struct {
	CommitsWalked int
	TotalEstimate int
	CurrentHash   string
	Collecting    bool
	Done          bool
}

// Source is the repository accessor consumed by the walker and the build
// pipeline. Implemented by Repository; tests substitute a fake.
type Source interface {
	// ResolveStart resolves a reference name to a commit hash. An empty
	// ref resolves to the repository head.
	ResolveStart(ref string) (string, error)

	// Parents returns the ordered parent hashes of a commit.
	Parents(hash string) ([]string, error)

	// Metadata returns the commit's author, committer, timestamps,
	// parents and full message.
	Metadata(hash string) (*Commit, error)

	// DiffAgainstParent returns per-file line changes between the commit
	// and its parent at parentIndex. A root commit is diffed against the
	// empty tree. Binary files are marked rather than counted.
	DiffAgainstParent(hash string, parentIndex int) ([]FileChange, error)
}
