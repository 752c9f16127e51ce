package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatchesCascade walks every rung of the decision cascade.
func TestMatchesCascade(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Committer
		expected bool
	}{
		{
			name:     "raw emails equal",
			a:        NewCommitter(1, "", "git@company.com"),
			b:        NewCommitter(2, "", "git@company.com"),
			expected: true,
		},
		{
			name:     "cleaned emails equal",
			a:        NewCommitter(1, "Ivan Ivanov", "i.ivanov@co.com"),
			b:        NewCommitter(2, "Ivan I.", "iivanov@co.com"),
			expected: true,
		},
		{
			name:     "email within one typo",
			a:        NewCommitter(1, "", "john.doe@x.com"),
			b:        NewCommitter(2, "", "john.doee@y.com"),
			expected: true,
		},
		{
			name:     "raw names equal",
			a:        NewCommitter(1, "Ivan Ivanov", "personal@gmail.com"),
			b:        NewCommitter(2, "Ivan Ivanov", "work@co.com"),
			expected: true,
		},
		{
			name:     "name permutation equals email local part",
			a:        NewCommitter(1, "Ivan Ivanov", "x@q.com"),
			b:        NewCommitter(2, "I. Ivanov", "iivanov@co.com"),
			expected: true,
		},
		{
			name:     "primary permutations equal",
			a:        NewCommitter(1, "Ivan Petrov", ""),
			b:        NewCommitter(2, "Ivan Petrov Jr", ""),
			expected: true,
		},
		{
			name:     "primary permutations similar",
			a:        NewCommitter(1, "ivanov", ""),
			b:        NewCommitter(2, "ivanovv", ""),
			expected: true,
		},
		{
			name:     "fuzzy email fallback",
			a:        NewCommitter(1, "", "ivanov@x.com"),
			b:        NewCommitter(2, "", "ivanovv@y.com"),
			expected: true,
		},
		{
			name:     "different humans",
			a:        NewCommitter(1, "Alice Smith", "alice@x.com"),
			b:        NewCommitter(2, "Bob Jones", "bob@x.com"),
			expected: false,
		},
		{
			name:     "generic emails do not cross-match",
			a:        NewCommitter(1, "", "git@a.com"),
			b:        NewCommitter(2, "", "git@b.com"),
			expected: false,
		},
		{
			name:     "empty identities",
			a:        NewCommitter(1, "", ""),
			b:        NewCommitter(2, "", ""),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.a, tt.b))
		})
	}
}

// TestMatchesSymmetry checks Matches(a,b) == Matches(b,a) across a mix of
// matching and non-matching identities.
func TestMatchesSymmetry(t *testing.T) {
	committers := []*Committer{
		NewCommitter(1, "Ivan Ivanov", "i.ivanov@co.com"),
		NewCommitter(2, "Ivan Ivanov", "iivanov@co.com"),
		NewCommitter(3, "Alice Smith", "alice@x.com"),
		NewCommitter(4, "Bob Jones", "bob@x.com"),
		NewCommitter(5, "ivanov", ""),
		NewCommitter(6, "", "ivanovv@y.com"),
		NewCommitter(7, "", ""),
		NewCommitter(8, `CORP\asmith`, "a.smith@corp.com"),
	}

	for i, a := range committers {
		for j, b := range committers {
			if i == j {
				continue
			}
			assert.Equal(t, Matches(a, b), Matches(b, a),
				"asymmetric result for %d vs %d", a.ID, b.ID)
		}
	}
}
