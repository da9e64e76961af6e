// Package synth generates quiz questions from filtered sentences and
// normalized text. Three independent generators, each capped at 5 questions,
// feed a combined set truncated to the overall maximum: true/false statements,
// definition-pattern multiple choice, and fill-in-the-blank.
package synth

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"docquiz/internal/domain"
	"docquiz/internal/util"
)

const (
	perTypeCap = 5

	// BlankMarker replaces the removed word in fill-in-the-blank prompts.
	BlankMarker = "______"
)

var (
	// A capitalized phrase of up to four words, a copula, then a definition
	// clause of 10-100 characters stopping before terminal punctuation.
	definitionRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:\s+[A-Za-z][a-z]*){0,3})\s+(?:is|are|refers to|means|defines|define)\s+([^.!?\n]{10,100})`)

	alphaOnlyRe = regexp.MustCompile(`^[A-Za-z]+$`)
	nonAlphaRe  = regexp.MustCompile(`[^a-z]`)
)

// Generator builds questions. The random source behind option shuffling is
// injectable so tests can pin the option order.
type Generator struct {
	rnd   *rand.Rand
	newID func() string
}

// NewGenerator returns a Generator backed by the given random source.
// A nil source falls back to a time-seeded one.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		rnd:   rand.New(src),
		newID: util.NewULID,
	}
}

// Questions combines the three generators in true/false, multiple choice,
// fill-in-the-blank order and truncates to max questions.
func (g *Generator) Questions(sentences []string, normalized string, max int) []domain.Question {
	questions := g.TrueFalse(sentences)
	questions = append(questions, g.MultipleChoice(normalized)...)
	questions = append(questions, g.FillBlank(sentences)...)
	if len(questions) > max {
		questions = questions[:max]
	}
	return questions
}

// TrueFalse turns up to 5 sentences of 8-25 words into statements. Source
// sentences are taken from the text as-is, so every statement is true; the
// generator has no falsification logic.
func (g *Generator) TrueFalse(sentences []string) []domain.Question {
	var questions []domain.Question
	for _, s := range sentences {
		wc := len(strings.Fields(s))
		if wc < 8 || wc > 25 {
			continue
		}
		questions = append(questions, domain.Question{
			ID:            g.newID(),
			Type:          domain.TrueFalse,
			Prompt:        s,
			Options:       []string{"True", "False"},
			CorrectAnswer: "true",
		})
		if len(questions) == perTypeCap {
			break
		}
	}
	return questions
}

// MultipleChoice scans the normalized text for "Term is/are/refers to ..."
// definitions and builds one question per match, up to 5. Distractors are the
// two halves of the definition marked "(incorrect)" plus "None of the above";
// option order is a uniform shuffle.
func (g *Generator) MultipleChoice(normalized string) []domain.Question {
	var questions []domain.Question
	for _, m := range definitionRe.FindAllStringSubmatch(normalized, -1) {
		term := strings.TrimSpace(m[1])
		correct := strings.TrimSpace(m[2])

		words := strings.Fields(correct)
		if len(words) < 3 {
			continue
		}

		mid := len(words) / 2
		options := []string{
			correct,
			strings.Join(words[:mid], " ") + " (incorrect)",
			strings.Join(words[mid:], " ") + " (incorrect)",
			"None of the above",
		}
		g.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, domain.Question{
			ID:            g.newID(),
			Type:          domain.MultipleChoice,
			Prompt:        "What is " + term + "?",
			Options:       options,
			CorrectAnswer: correct,
		})
		if len(questions) == perTypeCap {
			break
		}
	}
	return questions
}

// FillBlank blanks out the longest purely alphabetic word longer than 4
// characters in up to 5 sentences of 8-20 words. Sentences without an
// eligible word are skipped. The stored answer is the word lowercased.
func (g *Generator) FillBlank(sentences []string) []domain.Question {
	var questions []domain.Question
	for _, s := range sentences {
		tokens := strings.Fields(s)
		if len(tokens) < 8 || len(tokens) > 20 {
			continue
		}

		candidates := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if len(t) > 4 && alphaOnlyRe.MatchString(t) {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		// Stable sort keeps the first occurrence ahead on equal lengths.
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i]) > len(candidates[j])
		})
		word := candidates[0]

		answer := nonAlphaRe.ReplaceAllString(strings.ToLower(word), "")
		questions = append(questions, domain.Question{
			ID:            g.newID(),
			Type:          domain.FillBlank,
			Prompt:        strings.Replace(s, word, BlankMarker, 1),
			CorrectAnswer: answer,
		})
		if len(questions) == perTypeCap {
			break
		}
	}
	return questions
}
