// Package score ranks sentences and capitalized terms by study relevance.
// Scoring is heuristic: a fixed importance vocabulary, document position,
// sentence shape, and proper-noun density stand in for any real semantic
// understanding.
package score

import (
	"regexp"
	"sort"
	"strings"
)

// importanceVocabulary are words and phrases that tend to introduce material
// worth studying. Matching is a case-insensitive substring check.
var importanceVocabulary = []string{
	"definition", "define", "defined as", "refers to", "means", "known as",
	"called", "key", "important", "significant", "essential", "fundamental",
	"primary", "main", "major", "critical", "central", "theory", "concept",
	"principle", "process", "example", "result", "because",
}

// termStopList are common capitalized sentence-starters that are not terms.
var termStopList = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"There": true, "They": true, "Then": true, "Thus": true, "When": true,
	"Where": true, "What": true, "Which": true, "While": true, "With": true,
	"From": true, "Have": true, "Will": true, "Would": true, "Could": true,
	"Should": true, "About": true, "After": true, "Before": true,
	"Because": true, "However": true, "Also": true, "Each": true,
	"Some": true, "Many": true, "Most": true, "Other": true,
}

var (
	properNounRe = regexp.MustCompile(`^[A-Z][a-z]+$`)
	digitRunRe   = regexp.MustCompile(`\d+`)
	termTokenRe  = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
)

// ScoredSentence pairs a sentence with its relevance score. Scores have no
// fixed range; they only order sentences relative to each other.
type ScoredSentence struct {
	Sentence string
	Score    float64
}

// Score computes the relevance score for a sentence at the given position in
// the filtered, ordered sentence sequence.
func Score(sentence string, index int) float64 {
	var s float64
	lower := strings.ToLower(sentence)
	for _, term := range importanceVocabulary {
		s += 3 * float64(strings.Count(lower, term))
	}

	switch {
	case index < 5:
		s += 3
	case index < 10:
		s += 2
	}

	words := strings.Fields(sentence)
	switch {
	case len(words) >= 8 && len(words) <= 25:
		s += 3
	case len(words) >= 5 && len(words) <= 30:
		s += 1
	}

	properNouns := 0
	for _, w := range words {
		if properNounRe.MatchString(w) {
			properNouns++
		}
	}
	bonus := float64(properNouns) * 0.5
	if bonus > 3 {
		bonus = 3
	}
	s += bonus

	if len(digitRunRe.FindAllString(sentence, -1)) > 3 {
		s -= 2
	}
	if strings.Contains(sentence, ":") {
		s += 2
	}
	return s
}

// KeySentences returns up to n sentences ordered by descending score, ties
// broken by document order. It first takes the top 2n by score and only then
// drops non-positive scores, so a few zero-score sentences near the top do
// not starve the result when positive ones sit slightly further down.
func KeySentences(sentences []string, n int) []string {
	scored := make([]ScoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = ScoredSentence{Sentence: s, Score: Score(s, i)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > 2*n {
		scored = scored[:2*n]
	}
	var keys []string
	for _, sc := range scored {
		if sc.Score <= 0 {
			continue
		}
		keys = append(keys, sc.Sentence)
		if len(keys) == n {
			break
		}
	}
	return keys
}

// KeyTerms frequency-ranks capitalized words of length > 3 appearing at least
// twice in the text, excluding the stop-list, and returns up to m of them.
// Ties keep first-encountered order.
func KeyTerms(text string, m int) []string {
	counts := make(map[string]int)
	var order []string
	for _, token := range termTokenRe.FindAllString(text, -1) {
		if len(token) <= 3 || termStopList[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	var terms []string
	for _, t := range order {
		if counts[t] >= 2 {
			terms = append(terms, t)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return counts[terms[i]] > counts[terms[j]]
	})
	if len(terms) > m {
		terms = terms[:m]
	}
	return terms
}
