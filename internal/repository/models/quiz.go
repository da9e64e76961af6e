package models

import (
	"database/sql"
	"time"
)

// Quiz is the database row for a generated quiz. Notes and Questions are
// JSON-serialized domain values; the questions column includes the correct
// answers, which is why it never leaves the service layer unfiltered.
type Quiz struct {
	ID        string       `db:"id"`
	Notes     string       `db:"notes"`
	Questions string       `db:"questions"`
	CreatedAt time.Time    `db:"created_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt is the database row for one graded submission.
type QuizAttempt struct {
	ID         string    `db:"id"`
	QuizID     string    `db:"quiz_id"`
	Results    string    `db:"results"`
	Score      int       `db:"score"`
	Percentage int       `db:"percentage"`
	CreatedAt  time.Time `db:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
