package identity

// editRatio computes a normalized edit-similarity between two strings on a
// 0-100 scale: 100 * 2*LCS(a,b) / (len(a)+len(b)). A single-character typo
// between medium-length strings stays above the high-80s.
func editRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	// Longest common subsequence length, single-row DP.
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[lb]

	return 100 * float64(2*lcs) / float64(la+lb)
}

// tversky computes the Tversky index over character-bigram sets with
// alpha = beta = 1, which reduces to Jaccard similarity on the bigrams.
// Strings shorter than two characters contribute themselves as a single
// gram; two empty strings yield 0.
func tversky(a, b string) float64 {
	ga, gb := bigrams(a), bigrams(b)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}

	intersection := 0
	for g := range ga {
		if gb[g] {
			intersection++
		}
	}
	onlyA := len(ga) - intersection
	onlyB := len(gb) - intersection

	return float64(intersection) / float64(intersection+onlyA+onlyB)
}

func bigrams(s string) map[string]bool {
	grams := make(map[string]bool)
	if len(s) == 1 {
		grams[s] = true
		return grams
	}
	for i := 0; i+2 <= len(s); i++ {
		grams[s[i:i+2]] = true
	}
	return grams
}
