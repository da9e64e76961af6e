package domain

import (
	"time"
)

// QuestionType tags the three kinds of generated questions.
type QuestionType string

const (
	TrueFalse      QuestionType = "true_false"
	MultipleChoice QuestionType = "multiple_choice"
	FillBlank      QuestionType = "fill_blank"
)

// Question is one generated quiz question. Created once by the synthesizer
// and immutable afterward; the Grader re-derives correctness from
// CorrectAnswer alone.
//
// Prompt holds the statement for true/false questions, the "What is X?"
// prompt for multiple choice, and the sentence with the ______ marker for
// fill-in-the-blank. Options is ["True", "False"] for true/false, the four
// shuffled choices for multiple choice, and empty for fill-in-the-blank.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return NewInvalidInputError("question prompt is required")
	}
	if q.CorrectAnswer == "" && q.Type != FillBlank {
		return NewInvalidInputError("question correct answer is required")
	}
	switch q.Type {
	case TrueFalse:
		if len(q.Options) != 2 {
			return NewInvalidInputError("true/false question must have exactly 2 options")
		}
	case MultipleChoice:
		if len(q.Options) != 4 {
			return NewInvalidInputError("multiple choice question must have exactly 4 options")
		}
	case FillBlank:
		if len(q.Options) != 0 {
			return NewInvalidInputError("fill-in-the-blank question must not have options")
		}
	default:
		return NewInvalidInputError("unknown question type")
	}
	return nil
}

// StudyNotes is the study-view output of the pipeline: the highest-scoring
// sentences and the most frequent capitalized terms, both in rank order.
type StudyNotes struct {
	KeySentences []string `json:"key_sentences"`
	KeyTerms     []string `json:"key_terms"`
}

// Quiz represents one generated quiz in the domain
type Quiz struct {
	ID        string
	Notes     StudyNotes
	Questions []Question
	CreatedAt time.Time
}

// QuestionByID returns the question with the given ID, or nil.
func (q *Quiz) QuestionByID(id string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// AnswerResult is the graded outcome for a single question.
type AnswerResult struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	Correct    bool   `json:"correct"`
}

// QuizAttempt records one graded submission against a quiz.
type QuizAttempt struct {
	ID         string
	QuizID     string
	Results    []AnswerResult
	Score      int
	Percentage int
	CreatedAt  time.Time
}
