// Package identity normalizes raw commit author identities and decides
// whether two of them denote the same human.
package identity

import (
	"strings"
	"unicode"
)

// genericLocalParts are email local parts too generic to identify a person.
// Stripping them leaves an empty cleaned email, which keeps addresses like
// git@company.com from matching each other.
var genericLocalParts = []string{"git", "github", "me", "mail", "info", "dev", "hello"}

// nameParticles are standalone name tokens dropped during cleaning, so that
// "Jan van der Berg" and "Jan Berg" compare equal.
var nameParticles = map[string]bool{"van": true, "der": true}

// Committer is one normalized author identity with derived comparison keys.
// Build it with NewCommitter; the comparable-string list is computed lazily
// and cached on first use.
type Committer struct {
	ID    int64
	Name  string
	Email string

	CleanedName  string
	CleanedEmail string
	NameScore    float64

	comparables     []string
	comparablesDone bool
}

// NewCommitter normalizes a raw (id, name, email) triple.
func NewCommitter(id int64, name, email string) *Committer {
	return &Committer{
		ID:           id,
		Name:         name,
		Email:        email,
		CleanedName:  cleanName(name),
		CleanedEmail: cleanEmail(email),
		NameScore:    scoreName(name),
	}
}

// Comparables returns the cached comparable-string list for the identity.
// For a multi-word cleaned name it holds initial/word permutations across
// every word-index pair, plus one reversed full-name concatenation; for a
// single-word name it is just the space-removed cleaned name.
func (c *Committer) Comparables() []string {
	if !c.comparablesDone {
		c.comparables = buildComparables(c.CleanedName)
		c.comparablesDone = true
	}
	return c.comparables
}

// cleanEmail strips a generic local-part prefix, takes the local part,
// lowercases it and removes everything that is not a letter or whitespace.
func cleanEmail(email string) string {
	e := strings.TrimSpace(email)
	for _, p := range genericLocalParts {
		if strings.HasPrefix(strings.ToLower(e), p+"@") {
			e = e[len(p):]
			break
		}
	}
	local, _, _ := strings.Cut(e, "@")
	return stripToLetters(strings.ToLower(local))
}

// cleanName normalizes a free-text author name. Handles DOMAIN\username
// forms and names with an embedded email, then strips special characters,
// lowercases, and drops standalone name particles.
func cleanName(name string) string {
	n := name
	if i := strings.LastIndex(n, `\`); i >= 0 {
		n = n[i+1:]
	}
	if i := strings.Index(n, "@"); i >= 0 {
		n = n[:i]
	}
	n = strings.ToLower(stripToLetters(n))

	words := strings.Fields(n)
	kept := words[:0]
	for _, w := range words {
		if nameParticles[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// scoreName rates how much a raw name looks like a well-formed human name.
// Higher scores win parent election during linking. Multiple words help;
// lowercase word starts and special characters hurt.
func scoreName(name string) float64 {
	trimmed := strings.TrimSpace(name)
	words := strings.Fields(trimmed)

	notUppercase := 0
	for _, w := range words {
		if r := []rune(w)[0]; !unicode.IsUpper(r) {
			notUppercase++
		}
	}
	if notUppercase > 2 {
		notUppercase = 2
	}

	whitespace := 0
	if len(words) > 1 {
		whitespace = 1
	}

	specialChars := 0
	for _, r := range trimmed {
		if !isNameRune(r) {
			specialChars++
		}
	}

	return float64(whitespace) - float64(notUppercase)*0.1 - float64(specialChars)*0.2
}

// buildComparables generates handle-like permutations for a cleaned name,
// e.g. "ivan ivanov" yields "iivanov", "ivanovi", ... so the name can be
// matched against email local parts built from initials and surnames.
func buildComparables(cleanedName string) []string {
	words := strings.Fields(cleanedName)
	if len(words) == 0 {
		return nil
	}
	if len(words) == 1 {
		return []string{words[0]}
	}

	var out []string
	for i := 0; i < len(words); i++ {
		for j := i; j < len(words); j++ {
			wi, wj := words[i], words[j]
			out = append(out, wi[:1]+wj, wj+wi[:1], wj[:1]+wi, wi+wj[:1])
		}
	}
	// One reversed full-name concatenation, computed once.
	out = append(out, words[1]+words[0])
	return out
}

// stripToLetters removes every character that is not an ASCII letter or
// whitespace.
func stripToLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isNameRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNameRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
