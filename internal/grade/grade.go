// Package grade decides answer correctness per question type. Grading is a
// pure function of the question's stored correct-answer metadata and the user
// response; it shares no state with the generation pipeline.
package grade

import (
	"math"
	"regexp"
	"strings"

	"docquiz/internal/domain"
)

var nonAlphaRe = regexp.MustCompile(`[^a-z]`)

// NormalizeAnswer lowercases free-text input and strips every non-alphabetic
// character, matching how fill-in-the-blank answers are stored.
func NormalizeAnswer(s string) string {
	return nonAlphaRe.ReplaceAllString(strings.ToLower(s), "")
}

// Grade reports whether the user answer is correct for the question.
// True/false compares the selected option case-insensitively, multiple choice
// requires the exact option string, and fill-in-the-blank compares the
// normalized input against the stored normalized answer.
func Grade(q *domain.Question, userAnswer string) bool {
	switch q.Type {
	case domain.TrueFalse:
		return strings.EqualFold(userAnswer, q.CorrectAnswer)
	case domain.MultipleChoice:
		return userAnswer == q.CorrectAnswer
	case domain.FillBlank:
		return NormalizeAnswer(userAnswer) == q.CorrectAnswer
	default:
		return false
	}
}

// Percentage converts a correct-answer count into a rounded percent score.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}
