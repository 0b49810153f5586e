package identity_test

import (
	"testing"

	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/identity"
)

func TestLookupMergesSameEmail(t *testing.T) {
	r := identity.NewResolver(nil)

	a := r.Lookup("Alice", "alice@x.com")
	b := r.Lookup("Alice Smith", "ALICE@x.com")

	if a != b {
		t.Errorf("expected same identity for alice@x.com, got %q and %q", a.Key, b.Key)
	}
	if a.Key != "alice@x.com" {
		t.Errorf("canonical key = %q, want alice@x.com", a.Key)
	}
	if a.Name != "Alice" {
		t.Errorf("display name = %q, want first observed %q", a.Name, "Alice")
	}
}

func TestLookupInvalidEmailFallsBackToName(t *testing.T) {
	r := identity.NewResolver(nil)

	tests := []struct {
		name  string
		email string
		key   string
	}{
		{"Bob", "not-an-email", "bob"},
		{"Carol", "", "carol"},
		{"Dan", "@nolocal.com", "dan"},
		{"Eve", "eve@", "eve"},
	}

	for _, tc := range tests {
		a := r.Lookup(tc.name, tc.email)
		if a.Key != tc.key {
			t.Errorf("Lookup(%q, %q).Key = %q, want %q", tc.name, tc.email, a.Key, tc.key)
		}
	}
}

func TestLookupAliases(t *testing.T) {
	r := identity.NewResolver(map[string]string{
		"al@old.example": "alice@x.com",
	})

	a := r.Lookup("Alice", "alice@x.com")
	b := r.Lookup("Al", "al@old.example")

	if a != b {
		t.Errorf("alias did not fold: %q vs %q", a.Key, b.Key)
	}
}

func TestLookupTransliteratesDisplayName(t *testing.T) {
	r := identity.NewResolver(nil)

	a := r.Lookup("Jürgen Müßig", "juergen@x.com")
	if a.Name != "Juergen Muessig" {
		t.Errorf("display name = %q, want Juergen Muessig", a.Name)
	}
}

func TestResolveOrderAndDedup(t *testing.T) {
	r := identity.NewResolver(nil)

	c := &git.Commit{
		Author: git.Author{Name: "Bob", Email: "bob@x.com"},
		Message: `Fix bug

Co-authored-by: Alice <alice@x.com>
Co-authored-by: Bob B <bob@x.com>
Co-authored-by: Carol <carol@x.com>
`,
	}

	authors := r.Resolve(c)

	want := []string{"bob@x.com", "alice@x.com", "carol@x.com"}
	if len(authors) != len(want) {
		t.Fatalf("Resolve() returned %d authors, want %d", len(authors), len(want))
	}
	for i, key := range want {
		if authors[i].Key != key {
			t.Errorf("authors[%d].Key = %q, want %q", i, authors[i].Key, key)
		}
	}
}

func TestResolveAlwaysYieldsPrimary(t *testing.T) {
	r := identity.NewResolver(nil)

	c := &git.Commit{Author: git.Author{}}
	authors := r.Resolve(c)
	if len(authors) != 1 {
		t.Fatalf("Resolve() returned %d authors, want 1", len(authors))
	}
}
