package identity

import "slices"

// Thresholds tuned on production identity data. They encode the acceptable
// false-positive/false-negative trade-off for auto-merging identities; an
// over-eager matcher silently merges two different humans' contributions.
const (
	emailRatioThreshold   = 88   // editRatio on cleaned emails (single typo)
	nameTverskyThreshold  = 0.70 // tversky on first comparable strings
	emailTverskyThreshold = 0.81 // tversky fallback on cleaned emails
	minFuzzyEmailLen      = 6    // cleaned emails must be longer to fuzzy-match
)

// Matches decides whether two normalized identities denote the same human.
// The cascade is ordered by signal reliability, short-circuiting on the
// first hit: exact and near-exact email checks first, then raw names, then
// name-permutation checks against emails and each other, and finally a
// fuzzy email fallback. Matches is symmetric in its arguments.
func Matches(a, b *Committer) bool {
	// 1. Raw emails equal.
	if a.Email != "" && a.Email == b.Email {
		return true
	}

	// 2. Cleaned emails equal.
	if a.CleanedEmail != "" && a.CleanedEmail == b.CleanedEmail {
		return true
	}

	// 3. Cleaned emails within one typo of each other.
	if len(a.CleanedEmail) > minFuzzyEmailLen && len(b.CleanedEmail) > minFuzzyEmailLen &&
		editRatio(a.CleanedEmail, b.CleanedEmail) >= emailRatioThreshold {
		return true
	}

	// 4. Raw names equal.
	if a.Name != "" && a.Name == b.Name {
		return true
	}

	ca, cb := a.Comparables(), b.Comparables()

	// 5. Degenerate comparison guard: permutations exist but nothing to
	// compare against.
	if (len(ca) > 1 || len(cb) > 1) && first(ca) == "" && first(cb) == "" {
		return false
	}

	// 6. A name permutation of one side equals the other's email local part.
	if b.CleanedEmail != "" && slices.Contains(ca, b.CleanedEmail) {
		return true
	}
	if a.CleanedEmail != "" && slices.Contains(cb, a.CleanedEmail) {
		return true
	}

	// 7. Primary permutations equal.
	if len(ca) > 0 && len(cb) > 0 && ca[0] == cb[0] {
		return true
	}

	// 8. Primary permutations similar enough.
	if len(ca) > 0 && len(cb) > 0 && tversky(ca[0], cb[0]) > nameTverskyThreshold {
		return true
	}

	// 9. Fuzzy email fallback.
	if a.CleanedEmail != "" && b.CleanedEmail != "" &&
		tversky(a.CleanedEmail, b.CleanedEmail) > emailTverskyThreshold {
		return true
	}

	return false
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
