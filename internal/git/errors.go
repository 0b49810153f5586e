package git

import "errors"

var (
	// ErrRepoNotFound means the path is not inside a git repository.
	ErrRepoNotFound = errors.New("not a git repository")

	// ErrNotFound means a reference or commit id does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrCorrupt means an object exists but could not be decoded.
	ErrCorrupt = errors.New("corrupt object")

	// ErrCorruptHistory means the commit graph contains a cycle or an
	// unreadable commit was hit mid-traversal.
	ErrCorruptHistory = errors.New("corrupt history")
)
