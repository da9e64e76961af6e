package domain

import "context"

// QuizRepository defines persistence operations for quizzes and attempts.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	SaveAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptsByQuizID(ctx context.Context, quizID string) ([]*QuizAttempt, error)
}
