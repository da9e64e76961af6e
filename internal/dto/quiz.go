package dto

// GenerateQuizRequest is the JSON body for text-based quiz generation.
// File uploads use multipart form data with a "document" part instead.
type GenerateQuizRequest struct {
	Text string `json:"text"`
}

// QuestionResponse represents one question in the API response. Correct
// answers are never included; grading happens server-side by quiz ID.
type QuestionResponse struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

// StudyNotesResponse carries the key sentences and key terms of the document.
type StudyNotesResponse struct {
	KeySentences []string `json:"key_sentences"`
	KeyTerms     []string `json:"key_terms"`
}

// QuizResponse represents a generated quiz in the API response
type QuizResponse struct {
	ID        string             `json:"id"`
	Notes     StudyNotesResponse `json:"notes"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmittedAnswer is one user answer in a grading request.
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// GradeRequest is the JSON body for grading a quiz submission.
type GradeRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// AnswerResultResponse is the graded outcome for a single question.
type AnswerResultResponse struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// GradeResponse is the graded outcome for a whole submission.
type GradeResponse struct {
	QuizID     string                 `json:"quiz_id"`
	Results    []AnswerResultResponse `json:"results"`
	Score      int                    `json:"score"`
	Total      int                    `json:"total"`
	Percentage int                    `json:"percentage"`
}

// AttemptResultResponse is one recorded answer inside a past attempt.
type AttemptResultResponse struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	Correct    bool   `json:"correct"`
}

// AttemptResponse summarizes one past graded submission.
type AttemptResponse struct {
	ID         string                  `json:"id"`
	Results    []AttemptResultResponse `json:"results"`
	Score      int                     `json:"score"`
	Percentage int                     `json:"percentage"`
	CreatedAt  string                  `json:"created_at"`
}
