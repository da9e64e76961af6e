package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docquiz/internal/domain"
	"docquiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	model, err := toModelQuiz(quiz)
	if err != nil {
		return err
	}

	query := `INSERT INTO quizzes (id, notes, questions, created_at)
	VALUES (?, ?, ?, ?)`

	_, err = a.db.ExecContext(ctx, query,
		model.ID,
		model.Notes,
		model.Questions,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT id, notes, questions, created_at, deleted_at
	FROM quizzes
	WHERE id = ?
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&model)
}

// SaveAttempt implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	results, err := json.Marshal(attempt.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt results: %w", err)
	}

	query := `INSERT INTO quiz_attempts (id, quiz_id, results, score, percentage, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err = a.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.QuizID,
		string(results),
		attempt.Score,
		attempt.Percentage,
		attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return nil
}

// GetAttemptsByQuizID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetAttemptsByQuizID(ctx context.Context, quizID string) ([]*domain.QuizAttempt, error) {
	var rows []models.QuizAttempt
	query := `SELECT id, quiz_id, results, score, percentage, created_at
	FROM quiz_attempts
	WHERE quiz_id = ?
	ORDER BY created_at DESC`

	if err := a.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get attempts for quiz %s: %w", quizID, err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempt, err := toDomainAttempt(&rows[i])
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

func toModelQuiz(quiz *domain.Quiz) (*models.Quiz, error) {
	notes, err := json.Marshal(quiz.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz notes: %w", err)
	}
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz questions: %w", err)
	}
	return &models.Quiz{
		ID:        quiz.ID,
		Notes:     string(notes),
		Questions: string(questions),
		CreatedAt: quiz.CreatedAt,
	}, nil
}

func toDomainQuiz(model *models.Quiz) (*domain.Quiz, error) {
	quiz := &domain.Quiz{
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
	}
	if err := json.Unmarshal([]byte(model.Notes), &quiz.Notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz notes: %w", err)
	}
	if err := json.Unmarshal([]byte(model.Questions), &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz questions: %w", err)
	}
	return quiz, nil
}

func toDomainAttempt(model *models.QuizAttempt) (*domain.QuizAttempt, error) {
	attempt := &domain.QuizAttempt{
		ID:         model.ID,
		QuizID:     model.QuizID,
		Score:      model.Score,
		Percentage: model.Percentage,
		CreatedAt:  model.CreatedAt,
	}
	if err := json.Unmarshal([]byte(model.Results), &attempt.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt results: %w", err)
	}
	return attempt, nil
}
