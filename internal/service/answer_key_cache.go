package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docquiz/internal/cache"
	"docquiz/internal/domain"
	"docquiz/internal/logger"

	"go.uber.org/zap"
)

// ErrAnswerKeyNotFound is returned when no answer key is cached for a quiz.
var ErrAnswerKeyNotFound = errors.New("answer key not found in cache")

// answerKeyEntry is the per-question payload stored in the Redis hash. The
// type tag is needed because the grading rule differs per question type.
type answerKeyEntry struct {
	Type   domain.QuestionType `json:"type"`
	Answer string              `json:"answer"`
}

// AnswerKeyCacheService caches the correct-answer metadata of generated
// quizzes so grading does not need a database round trip per submission.
type AnswerKeyCacheService interface {
	Put(ctx context.Context, quiz *domain.Quiz) error
	Get(ctx context.Context, quizID string) (map[string]domain.Question, error)
}

// answerKeyCacheServiceImpl implements AnswerKeyCacheService using a generic cache.
type answerKeyCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewAnswerKeyCacheService creates a new instance of answerKeyCacheServiceImpl.
func NewAnswerKeyCacheService(c domain.Cache, ttl time.Duration) AnswerKeyCacheService {
	if c == nil {
		// Fallback to a no-op implementation if cache is nil to prevent panics
		logger.Get().Warn("AnswerKeyCacheService initialized with nil cache. Service will be no-op.")
		return &noopAnswerKeyCacheService{}
	}
	return &answerKeyCacheServiceImpl{
		cache: c,
		ttl:   ttl,
	}
}

func (s *answerKeyCacheServiceImpl) generateKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "answerkey", quizID)
}

// Put stores one hash field per question under the quiz's answer-key hash.
func (s *answerKeyCacheServiceImpl) Put(ctx context.Context, quiz *domain.Quiz) error {
	key := s.generateKey(quiz.ID)
	for _, q := range quiz.Questions {
		entry := answerKeyEntry{Type: q.Type, Answer: q.CorrectAnswer}
		data, err := json.Marshal(entry)
		if err != nil {
			return domain.NewInternalError("failed to marshal answer key entry", err)
		}
		if err := s.cache.HSet(ctx, key, q.ID, string(data)); err != nil {
			logger.Get().Error("Failed to cache answer key entry", zap.Error(err), zap.String("key", key), zap.String("questionID", q.ID))
			return domain.NewInternalError(fmt.Sprintf("failed to set answer key to cache for key %s", key), err)
		}
	}
	if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
		logger.Get().Warn("Failed to set answer key TTL", zap.Error(err), zap.String("key", key))
	}
	logger.Get().Debug("Cached quiz answer key", zap.String("key", key), zap.Int("questions", len(quiz.Questions)), zap.Duration("ttl", s.ttl))
	return nil
}

// Get returns the cached answer key as a map of question ID to a minimal
// Question carrying only the fields the grader needs.
func (s *answerKeyCacheServiceImpl) Get(ctx context.Context, quizID string) (map[string]domain.Question, error) {
	key := s.generateKey(quizID)
	fields, err := s.cache.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrAnswerKeyNotFound
		}
		logger.Get().Error("Failed to get answer key from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get answer key from cache for key %s", key), err)
	}
	if len(fields) == 0 {
		return nil, ErrAnswerKeyNotFound
	}

	answerKey := make(map[string]domain.Question, len(fields))
	for questionID, data := range fields {
		var entry answerKeyEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			logger.Get().Warn("Failed to unmarshal answer key entry", zap.Error(err), zap.String("key", key), zap.String("questionID", questionID))
			continue
		}
		answerKey[questionID] = domain.Question{
			ID:            questionID,
			Type:          entry.Type,
			CorrectAnswer: entry.Answer,
		}
	}
	return answerKey, nil
}

// noopAnswerKeyCacheService is used when no cache backend is configured.
type noopAnswerKeyCacheService struct{}

func (s *noopAnswerKeyCacheService) Put(ctx context.Context, quiz *domain.Quiz) error {
	return nil
}

func (s *noopAnswerKeyCacheService) Get(ctx context.Context, quizID string) (map[string]domain.Question, error) {
	return nil, ErrAnswerKeyNotFound
}
