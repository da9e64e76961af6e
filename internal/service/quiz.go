package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"docquiz/internal/config"
	"docquiz/internal/domain"
	"docquiz/internal/dto"
	"docquiz/internal/grade"
	"docquiz/internal/logger"
	"docquiz/internal/normalize"
	"docquiz/internal/score"
	"docquiz/internal/segment"
	"docquiz/internal/synth"
	"docquiz/internal/textsalvage"
	"docquiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuizService turns documents into quizzes and grades submissions against
// them. Each generation request is an independent computation over its own
// input; the service holds no per-request state.
type QuizService interface {
	GenerateFromText(ctx context.Context, text string) (*dto.QuizResponse, error)
	GenerateFromDocument(ctx context.Context, filename string, data []byte) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	GradeSubmission(ctx context.Context, quizID string, req *dto.GradeRequest) (*dto.GradeResponse, error)
	ListAttempts(ctx context.Context, quizID string) ([]dto.AttemptResponse, error)
}

type quizService struct {
	repo       domain.QuizRepository
	answerKeys AnswerKeyCacheService
	generator  *synth.Generator
	cfg        *config.Config
}

// NewQuizService creates a new QuizService instance
func NewQuizService(repo domain.QuizRepository, answerKeys AnswerKeyCacheService, generator *synth.Generator, cfg *config.Config) QuizService {
	return &quizService{
		repo:       repo,
		answerKeys: answerKeys,
		generator:  generator,
		cfg:        cfg,
	}
}

// GenerateFromText runs the pipeline over already-decoded text.
func (s *quizService) GenerateFromText(ctx context.Context, text string) (*dto.QuizResponse, error) {
	return s.generate(ctx, text)
}

// GenerateFromDocument runs the pipeline over an uploaded file. PDF uploads
// go through binary text salvage; anything else is treated as plain text.
func (s *quizService) GenerateFromDocument(ctx context.Context, filename string, data []byte) (*dto.QuizResponse, error) {
	var text string
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		salvaged, err := s.salvage(ctx, data)
		if err != nil {
			return nil, err
		}
		text = salvaged
	} else {
		text = string(data)
	}
	return s.generate(ctx, text)
}

// salvage extracts readable text from PDF bytes under a deadline. The
// extraction itself never fails; an insufficient result is the failure mode.
func (s *quizService) salvage(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.SalvageTimeout)
	defer cancel()

	results := make(chan string, 1)
	go func() {
		results <- textsalvage.Salvage(data)
	}()

	select {
	case text := <-results:
		if text == textsalvage.Insufficient {
			return "", domain.NewExtractionFailureError(nil)
		}
		return text, nil
	case <-ctx.Done():
		return "", domain.NewExtractionFailureError(ctx.Err())
	}
}

func (s *quizService) generate(ctx context.Context, text string) (*dto.QuizResponse, error) {
	text = strings.TrimSpace(text)
	if len(text) < s.cfg.Pipeline.MinInputLength {
		return nil, domain.NewInsufficientInputError(s.cfg.Pipeline.MinInputLength)
	}

	normalized := normalize.Normalize(text)
	sentences := segment.Sentences(normalized)

	// The three outputs are independent functions of the same inputs.
	var (
		keySentences []string
		keyTerms     []string
		questions    []domain.Question
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		keySentences = score.KeySentences(sentences, s.cfg.Pipeline.KeySentences)
		return nil
	})
	g.Go(func() error {
		keyTerms = score.KeyTerms(normalized, s.cfg.Pipeline.KeyTerms)
		return nil
	})
	g.Go(func() error {
		questions = s.generator.Questions(sentences, normalized, s.cfg.Pipeline.MaxQuestions)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("quiz generation failed", err)
	}

	if len(questions) == 0 {
		return nil, domain.NewEmptyQuizResultError()
	}

	quiz := &domain.Quiz{
		ID: util.NewULID(),
		Notes: domain.StudyNotes{
			KeySentences: keySentences,
			KeyTerms:     keyTerms,
		},
		Questions: questions,
		CreatedAt: time.Now(),
	}

	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to persist quiz", err)
	}
	if err := s.answerKeys.Put(ctx, quiz); err != nil {
		// Grading falls back to the repository on a cold cache.
		logger.Get().Warn("Failed to cache quiz answer key", zap.Error(err), zap.String("quizID", quiz.ID))
	}

	logger.Get().Info("Generated quiz",
		zap.String("quizID", quiz.ID),
		zap.Int("sentences", len(sentences)),
		zap.Int("questions", len(questions)),
	)
	return toQuizResponse(quiz), nil
}

// GetQuiz returns a previously generated quiz without its answer key.
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return toQuizResponse(quiz), nil
}

// GradeSubmission grades each submitted answer against the stored answer key
// and records the attempt.
func (s *quizService) GradeSubmission(ctx context.Context, quizID string, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	if len(req.Answers) == 0 {
		return nil, domain.NewInvalidInputError("at least one answer is required")
	}

	answerKey, err := s.loadAnswerKey(ctx, quizID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.AnswerResultResponse, 0, len(req.Answers))
	attemptResults := make([]domain.AnswerResult, 0, len(req.Answers))
	scoreCount := 0
	for _, submitted := range req.Answers {
		question, ok := answerKey[submitted.QuestionID]
		if !ok {
			return nil, domain.NewError(domain.CodeInvalidAnswer,
				"Answer submitted for unknown question: "+submitted.QuestionID, nil)
		}
		correct := grade.Grade(&question, submitted.Answer)
		if correct {
			scoreCount++
		}
		results = append(results, dto.AnswerResultResponse{
			QuestionID:    submitted.QuestionID,
			Correct:       correct,
			CorrectAnswer: question.CorrectAnswer,
		})
		attemptResults = append(attemptResults, domain.AnswerResult{
			QuestionID: submitted.QuestionID,
			UserAnswer: submitted.Answer,
			Correct:    correct,
		})
	}

	percentage := grade.Percentage(scoreCount, len(req.Answers))
	attempt := &domain.QuizAttempt{
		ID:         util.NewULID(),
		QuizID:     quizID,
		Results:    attemptResults,
		Score:      scoreCount,
		Percentage: percentage,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
		// The grading result is still valid; recording is best effort.
		logger.Get().Error("Failed to record quiz attempt", zap.Error(err), zap.String("quizID", quizID))
	}

	return &dto.GradeResponse{
		QuizID:     quizID,
		Results:    results,
		Score:      scoreCount,
		Total:      len(req.Answers),
		Percentage: percentage,
	}, nil
}

// ListAttempts returns the graded submissions recorded for a quiz, newest
// first.
func (s *quizService) ListAttempts(ctx context.Context, quizID string) ([]dto.AttemptResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	attempts, err := s.repo.GetAttemptsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz attempts", err)
	}

	responses := make([]dto.AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		results := make([]dto.AttemptResultResponse, 0, len(attempt.Results))
		for _, r := range attempt.Results {
			results = append(results, dto.AttemptResultResponse{
				QuestionID: r.QuestionID,
				UserAnswer: r.UserAnswer,
				Correct:    r.Correct,
			})
		}
		responses = append(responses, dto.AttemptResponse{
			ID:         attempt.ID,
			Results:    results,
			Score:      attempt.Score,
			Percentage: attempt.Percentage,
			CreatedAt:  attempt.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// loadAnswerKey prefers the Redis answer key and falls back to the persisted
// quiz, re-priming the cache on the way.
func (s *quizService) loadAnswerKey(ctx context.Context, quizID string) (map[string]domain.Question, error) {
	answerKey, err := s.answerKeys.Get(ctx, quizID)
	if err == nil {
		return answerKey, nil
	}
	if !errors.Is(err, ErrAnswerKeyNotFound) {
		logger.Get().Warn("Answer key cache lookup failed, falling back to repository", zap.Error(err), zap.String("quizID", quizID))
	}

	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz for grading", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	if err := s.answerKeys.Put(ctx, quiz); err != nil {
		logger.Get().Warn("Failed to re-prime answer key cache", zap.Error(err), zap.String("quizID", quizID))
	}

	answerKey = make(map[string]domain.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answerKey[q.ID] = q
	}
	return answerKey, nil
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	questions := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, dto.QuestionResponse{
			ID:      q.ID,
			Type:    string(q.Type),
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	return &dto.QuizResponse{
		ID: quiz.ID,
		Notes: dto.StudyNotesResponse{
			KeySentences: quiz.Notes.KeySentences,
			KeyTerms:     quiz.Notes.KeyTerms,
		},
		Questions: questions,
	}
}
