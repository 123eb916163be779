package match

import (
	"slices"
	"sort"
)

// Candidate is a known name scored against the requested one.
type Candidate struct {
	Name string
	// Score is the normalized similarity (0-1).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every known name against target. A name sharing a token with
// the target (an author or a point count) gets a bonus, since those are what
// users remember. The result is sorted by score, then by name.
func Rank(target string, names []string) CandidateList {
	norm := Normalize(target)
	tokens := Tokens(target)

	candidates := make(CandidateList, 0, len(names))

	for _, name := range names {
		score := Similarity(norm, Normalize(name))

		for _, tok := range Tokens(name) {
			if slices.Contains(tokens, tok) {
				score = min(1, score+tokenBonus)
				break
			}
		}

		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

const tokenBonus = 0.25

// DefaultThreshold is the minimum score of a suggestion.
const DefaultThreshold = 0.5

// Suggest returns up to n names scoring at least DefaultThreshold.
func Suggest(target string, names []string, n int) []string {
	var out []string

	for _, c := range Rank(target, names).AboveThreshold(DefaultThreshold).Top(n) {
		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Higher scores come first; ties are broken alphabetically.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
