package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is the go-git backed Source implementation.
type Repository struct {
	repo *gogit.Repository
}

// Open opens the repository containing path, walking up parent directories
// the same way the git CLI does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, path)
		}
		return nil, fmt.Errorf("opening repository %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// ResolveStart resolves a reference name to a commit hash. An empty ref
// resolves to HEAD.
func (r *Repository) ResolveStart(ref string) (string, error) {
	if ref == "" {
		head, err := r.repo.Head()
		if err != nil {
			return "", fmt.Errorf("%w: HEAD", ErrNotFound)
		}
		return head.Hash().String(), nil
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return hash.String(), nil
}

// Parents returns the ordered parent hashes of a commit.
func (r *Repository) Parents(hash string) ([]string, error) {
	commit, err := r.commit(hash)
	if err != nil {
		return nil, err
	}

	parents := make([]string, len(commit.ParentHashes))
	for i, p := range commit.ParentHashes {
		parents[i] = p.String()
	}
	return parents, nil
}

// Metadata returns the commit's author, committer, timestamps, parents and
// full message.
func (r *Repository) Metadata(hash string) (*Commit, error) {
	commit, err := r.commit(hash)
	if err != nil {
		return nil, err
	}

	parents := make([]string, len(commit.ParentHashes))
	for i, p := range commit.ParentHashes {
		parents[i] = p.String()
	}

	return &Commit{
		Hash:          commit.Hash.String(),
		ShortHash:     commit.Hash.String()[:7],
		Author:        Author{Name: commit.Author.Name, Email: commit.Author.Email},
		Committer:     Author{Name: commit.Committer.Name, Email: commit.Committer.Email},
		AuthorDate:    commit.Author.When,
		CommitterDate: commit.Committer.When,
		Parents:       parents,
		Message:       commit.Message,
	}, nil
}

// DiffAgainstParent returns per-file line changes between the commit and its
// parent at parentIndex. Root commits are diffed against the empty tree.
func (r *Repository) DiffAgainstParent(hash string, parentIndex int) ([]FileChange, error) {
	commit, err := r.commit(hash)
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: tree of %s: %v", ErrCorrupt, hash, err)
	}

	var parentTree *object.Tree
	if len(commit.ParentHashes) > 0 {
		if parentIndex < 0 || parentIndex >= len(commit.ParentHashes) {
			return nil, fmt.Errorf("%w: %s has no parent %d", ErrNotFound, hash, parentIndex)
		}

		parent, err := r.commit(commit.ParentHashes[parentIndex].String())
		if err != nil {
			return nil, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("%w: tree of %s: %v", ErrCorrupt, parent.Hash, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", hash, err)
	}

	patch, err := changes.Patch()
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", hash, err)
	}

	var files []FileChange
	for _, fp := range patch.FilePatches() {
		fc := FileChange{FilePath: filePatchPath(fp)}
		if fc.FilePath == "" {
			continue
		}

		if fp.IsBinary() {
			fc.IsBinary = true
		} else {
			for _, chunk := range fp.Chunks() {
				switch chunk.Type() {
				case diff.Add:
					fc.Additions += countLines(chunk.Content())
				case diff.Delete:
					fc.Deletions += countLines(chunk.Content())
				}
			}
		}

		files = append(files, fc)
	}

	return files, nil
}

func (r *Repository) commit(hash string) (*object.Commit, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, hash, err)
	}
	return commit, nil
}

// filePatchPath prefers the post-image path so renames are attributed to the
// new location.
func filePatchPath(fp diff.FilePatch) string {
	from, to := fp.Files()
	if to != nil {
		return to.Path()
	}
	if from != nil {
		return from.Path()
	}
	return ""
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
