package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCleanEmail covers local-part extraction and generic prefix stripping.
func TestCleanEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "plain address", email: "ivanov@co.com", expected: "ivanov"},
		{name: "dots removed", email: "i.ivanov@co.com", expected: "iivanov"},
		{name: "digits removed", email: "jsmith1985@co.com", expected: "jsmith"},
		{name: "uppercase lowered", email: "JSmith@CO.COM", expected: "jsmith"},
		{name: "generic git", email: "git@company.com", expected: ""},
		{name: "generic github", email: "github@company.com", expected: ""},
		{name: "generic hello", email: "hello@agency.io", expected: ""},
		{name: "generic prefix not whole word", email: "dev.team@x.io", expected: "devteam"},
		{name: "empty", email: "", expected: ""},
		{name: "no at sign", email: "not-an-email", expected: "notanemail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanEmail(tt.email))
		})
	}
}

// TestCleanName covers domain-escaped forms, embedded emails and particles.
func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "simple", raw: "Ivan Ivanov", expected: "ivan ivanov"},
		{name: "domain escaped", raw: `CORP\jsmith`, expected: "jsmith"},
		{name: "embedded email", raw: "jsmith@corp.com", expected: "jsmith"},
		{name: "special characters", raw: "José Núñez-García", expected: "jos nezgarca"},
		{name: "dutch particles", raw: "Jan van der Berg", expected: "jan berg"},
		{name: "particle only at word boundary", raw: "Vander Berg", expected: "vander berg"},
		{name: "empty", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanName(tt.raw))
		})
	}
}

// TestScoreName checks that well-formed human names outscore handles.
func TestScoreName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{name: "two capitalized words", raw: "Ivan Ivanov", expected: 1.0},
		{name: "lowercase words", raw: "ivan ivanov", expected: 0.8},
		{name: "lowercase cap applies", raw: "ivan ivanov ivanovich jr", expected: 0.8},
		{name: "bot handle", raw: "dependabot[bot]", expected: -0.5},
		{name: "single word", raw: "ivanov", expected: -0.1},
		{name: "empty", raw: "", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scoreName(tt.raw), 0.0001)
		})
	}
}

// TestComparables checks permutation generation for names.
func TestComparables(t *testing.T) {
	t.Run("two word name", func(t *testing.T) {
		c := NewCommitter(1, "Ivan Ivanov", "")
		got := c.Comparables()

		assert.Equal(t, "iivan", got[0])
		assert.Contains(t, got, "iivanov")
		assert.Contains(t, got, "ivanovi")
		assert.Equal(t, "ivanovivan", got[len(got)-1])
	})

	t.Run("single word name", func(t *testing.T) {
		c := NewCommitter(2, "ivanov", "")
		assert.Equal(t, []string{"ivanov"}, c.Comparables())
	})

	t.Run("empty name", func(t *testing.T) {
		c := NewCommitter(3, "", "x@y.z")
		assert.Empty(t, c.Comparables())
	})

	t.Run("cached between calls", func(t *testing.T) {
		c := NewCommitter(4, "Ivan Ivanov", "")
		firstCall := c.Comparables()
		assert.Equal(t, firstCall, c.Comparables())
	})
}
