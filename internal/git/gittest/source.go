// Package gittest provides an in-memory git.Source for tests.
package gittest

import (
	"fmt"
	"time"

	"github.com/audi70r/gitcredit/internal/git"
)

// FakeCommit describes one commit in a fake repository.
type FakeCommit struct {
	Hash       string
	AuthorName string
	Email      string
	When       time.Time
	Parents    []string
	Message    string
	Changes    []git.FileChange
	DiffErr    error
}

// Source is an in-memory git.Source built from a list of FakeCommits.
type Source struct {
	Head    string
	Commits map[string]FakeCommit
}

// NewSource builds a Source. The first commit in the list is the head.
func NewSource(commits ...FakeCommit) *Source {
	s := &Source{Commits: make(map[string]FakeCommit, len(commits))}
	for i, c := range commits {
		if i == 0 {
			s.Head = c.Hash
		}
		s.Commits[c.Hash] = c
	}
	return s
}

func (s *Source) ResolveStart(ref string) (string, error) {
	if ref == "" {
		return s.Head, nil
	}
	if _, ok := s.Commits[ref]; !ok {
		return "", fmt.Errorf("%w: %s", git.ErrNotFound, ref)
	}
	return ref, nil
}

func (s *Source) Parents(hash string) ([]string, error) {
	c, ok := s.Commits[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", git.ErrNotFound, hash)
	}
	return c.Parents, nil
}

func (s *Source) Metadata(hash string) (*git.Commit, error) {
	c, ok := s.Commits[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", git.ErrNotFound, hash)
	}

	short := c.Hash
	if len(short) > 7 {
		short = short[:7]
	}

	return &git.Commit{
		Hash:          c.Hash,
		ShortHash:     short,
		Author:        git.Author{Name: c.AuthorName, Email: c.Email},
		Committer:     git.Author{Name: c.AuthorName, Email: c.Email},
		AuthorDate:    c.When,
		CommitterDate: c.When,
		Parents:       c.Parents,
		Message:       c.Message,
	}, nil
}

func (s *Source) DiffAgainstParent(hash string, parentIndex int) ([]git.FileChange, error) {
	c, ok := s.Commits[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", git.ErrNotFound, hash)
	}
	if c.DiffErr != nil {
		return nil, c.DiffErr
	}
	if parentIndex > 0 {
		return nil, fmt.Errorf("%w: %s has no parent %d", git.ErrNotFound, hash, parentIndex)
	}
	return c.Changes, nil
}
