package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"docquiz/internal/config"
	"docquiz/internal/domain"
	"docquiz/internal/dto"
	"docquiz/internal/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockQuizRepository implements domain.QuizRepository with function fields so
// each test overrides only what it needs.
type mockQuizRepository struct {
	SaveQuizFn            func(ctx context.Context, quiz *domain.Quiz) error
	GetQuizByIDFn         func(ctx context.Context, id string) (*domain.Quiz, error)
	SaveAttemptFn         func(ctx context.Context, attempt *domain.QuizAttempt) error
	GetAttemptsByQuizIDFn func(ctx context.Context, quizID string) ([]*domain.QuizAttempt, error)
}

func (m *mockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if m.SaveQuizFn != nil {
		return m.SaveQuizFn(ctx, quiz)
	}
	return nil
}

func (m *mockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	if m.GetQuizByIDFn != nil {
		return m.GetQuizByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockQuizRepository) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if m.SaveAttemptFn != nil {
		return m.SaveAttemptFn(ctx, attempt)
	}
	return nil
}

func (m *mockQuizRepository) GetAttemptsByQuizID(ctx context.Context, quizID string) ([]*domain.QuizAttempt, error) {
	if m.GetAttemptsByQuizIDFn != nil {
		return m.GetAttemptsByQuizIDFn(ctx, quizID)
	}
	return nil, nil
}

type mockAnswerKeyCache struct {
	PutFn func(ctx context.Context, quiz *domain.Quiz) error
	GetFn func(ctx context.Context, quizID string) (map[string]domain.Question, error)
}

func (m *mockAnswerKeyCache) Put(ctx context.Context, quiz *domain.Quiz) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, quiz)
	}
	return nil
}

func (m *mockAnswerKeyCache) Get(ctx context.Context, quizID string) (map[string]domain.Question, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, quizID)
	}
	return nil, ErrAnswerKeyNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			MinInputLength: 100,
			MaxQuestions:   10,
			KeySentences:   10,
			KeyTerms:       15,
			SalvageTimeout: 5 * time.Second,
			AnswerKeyTTL:   time.Hour,
		},
	}
}

func newTestService(repo *mockQuizRepository, answerKeys *mockAnswerKeyCache) QuizService {
	return NewQuizService(repo, answerKeys, synth.NewGenerator(rand.NewSource(1)), testConfig())
}

const biologyText = "Cells regulate the movement of substances across their membranes in several ways. " +
	"Osmosis is the movement of water molecules across a membrane. " +
	"Diffusion is the movement of particles from high concentration to low concentration. " +
	"Transport proteins help larger molecules cross the membrane barrier."

func domainErrorCode(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestGenerateFromText_RejectsShortInput(t *testing.T) {
	repo := &mockQuizRepository{
		SaveQuizFn: func(ctx context.Context, quiz *domain.Quiz) error {
			t.Fatal("SaveQuiz should not be called for rejected input")
			return nil
		},
	}
	svc := newTestService(repo, &mockAnswerKeyCache{})

	resp, err := svc.GenerateFromText(context.Background(), "Osmosis moves water.")

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInsufficientInput, domainErrorCode(t, err))
}

func TestGenerateFromText_BuildsQuizAndStripsAnswers(t *testing.T) {
	var savedQuiz *domain.Quiz
	var cachedQuizID string
	repo := &mockQuizRepository{
		SaveQuizFn: func(ctx context.Context, quiz *domain.Quiz) error {
			savedQuiz = quiz
			return nil
		},
	}
	answerKeys := &mockAnswerKeyCache{
		PutFn: func(ctx context.Context, quiz *domain.Quiz) error {
			cachedQuizID = quiz.ID
			return nil
		},
	}
	svc := newTestService(repo, answerKeys)

	resp, err := svc.GenerateFromText(context.Background(), biologyText)

	require.NoError(t, err)
	require.NotNil(t, savedQuiz)
	assert.Equal(t, savedQuiz.ID, resp.ID)
	assert.Equal(t, savedQuiz.ID, cachedQuizID)

	// Four statements, two definitions, four blanked sentences.
	require.Len(t, resp.Questions, 10)
	assert.Equal(t, string(domain.TrueFalse), resp.Questions[0].Type)
	assert.Equal(t, string(domain.MultipleChoice), resp.Questions[4].Type)
	assert.Equal(t, "What is Osmosis?", resp.Questions[4].Prompt)
	assert.Equal(t, string(domain.FillBlank), resp.Questions[6].Type)
	assert.Contains(t, resp.Questions[6].Prompt, synth.BlankMarker)

	// The persisted quiz carries answers; the response never does.
	for _, q := range savedQuiz.Questions {
		assert.NotEmpty(t, q.CorrectAnswer)
	}
	assert.NotEmpty(t, resp.Notes.KeySentences)
}

func TestGenerateFromText_EmptyQuizResult(t *testing.T) {
	// A single long rambling sentence: too many words for a statement or a
	// blank, and no definition pattern for multiple choice.
	text := "Countless students wander through campus libraries collecting notebooks pens folders " +
		"highlighters and coffee while trading complaints about deadlines group projects lab reports " +
		"and seminar presentations during midterm week"

	saveCalled := false
	repo := &mockQuizRepository{
		SaveQuizFn: func(ctx context.Context, quiz *domain.Quiz) error {
			saveCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &mockAnswerKeyCache{})

	resp, err := svc.GenerateFromText(context.Background(), text)

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeEmptyQuizResult, domainErrorCode(t, err))
	assert.False(t, saveCalled)
}

func TestGenerateFromText_RepositoryFailureIsFatal(t *testing.T) {
	repo := &mockQuizRepository{
		SaveQuizFn: func(ctx context.Context, quiz *domain.Quiz) error {
			return errors.New("disk full")
		},
	}
	svc := newTestService(repo, &mockAnswerKeyCache{})

	resp, err := svc.GenerateFromText(context.Background(), biologyText)

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInternal, domainErrorCode(t, err))
}

func TestGenerateFromText_CacheFailureIsNotFatal(t *testing.T) {
	answerKeys := &mockAnswerKeyCache{
		PutFn: func(ctx context.Context, quiz *domain.Quiz) error {
			return errors.New("redis down")
		},
	}
	svc := newTestService(&mockQuizRepository{}, answerKeys)

	resp, err := svc.GenerateFromText(context.Background(), biologyText)

	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestGenerateFromDocument_PlainTextUpload(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	resp, err := svc.GenerateFromDocument(context.Background(), "notes.txt", []byte(biologyText))

	require.NoError(t, err)
	assert.Len(t, resp.Questions, 10)
}

func TestGenerateFromDocument_UnreadablePDF(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	resp, err := svc.GenerateFromDocument(context.Background(), "scan.pdf", []byte("%PDF-1.4 binary junk"))

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeExtractionFailure, domainErrorCode(t, err))
}

func TestGetQuiz_NotFound(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	resp, err := svc.GetQuiz(context.Background(), "missing-id")

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeQuizNotFound, domainErrorCode(t, err))
}

func TestGetQuiz_ReturnsQuizWithoutAnswers(t *testing.T) {
	stored := &domain.Quiz{
		ID: "quiz-1",
		Notes: domain.StudyNotes{
			KeySentences: []string{"Osmosis is the movement of water molecules across a membrane"},
			KeyTerms:     []string{"Osmosis"},
		},
		Questions: []domain.Question{
			{ID: "q1", Type: domain.TrueFalse, Prompt: "Water crosses membranes", Options: []string{"True", "False"}, CorrectAnswer: "true"},
		},
		CreatedAt: time.Now(),
	}
	repo := &mockQuizRepository{
		GetQuizByIDFn: func(ctx context.Context, id string) (*domain.Quiz, error) {
			assert.Equal(t, "quiz-1", id)
			return stored, nil
		},
	}
	svc := newTestService(repo, &mockAnswerKeyCache{})

	resp, err := svc.GetQuiz(context.Background(), "quiz-1")

	require.NoError(t, err)
	assert.Equal(t, "quiz-1", resp.ID)
	assert.Equal(t, []string{"Osmosis"}, resp.Notes.KeyTerms)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "q1", resp.Questions[0].ID)
}

func gradeAnswerKey() map[string]domain.Question {
	return map[string]domain.Question{
		"q1": {ID: "q1", Type: domain.TrueFalse, CorrectAnswer: "true"},
		"q2": {ID: "q2", Type: domain.MultipleChoice, CorrectAnswer: "the movement of water molecules"},
		"q3": {ID: "q3", Type: domain.FillBlank, CorrectAnswer: "osmosis"},
	}
}

func TestGradeSubmission_UsesCachedAnswerKey(t *testing.T) {
	var savedAttempt *domain.QuizAttempt
	repo := &mockQuizRepository{
		GetQuizByIDFn: func(ctx context.Context, id string) (*domain.Quiz, error) {
			t.Fatal("repository should not be consulted when the answer key is cached")
			return nil, nil
		},
		SaveAttemptFn: func(ctx context.Context, attempt *domain.QuizAttempt) error {
			savedAttempt = attempt
			return nil
		},
	}
	answerKeys := &mockAnswerKeyCache{
		GetFn: func(ctx context.Context, quizID string) (map[string]domain.Question, error) {
			return gradeAnswerKey(), nil
		},
	}
	svc := newTestService(repo, answerKeys)

	resp, err := svc.GradeSubmission(context.Background(), "quiz-1", &dto.GradeRequest{
		Answers: []dto.SubmittedAnswer{
			{QuestionID: "q1", Answer: "True"},
			{QuestionID: "q2", Answer: "none of the above"},
			{QuestionID: "q3", Answer: " Osmosis! "},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "quiz-1", resp.QuizID)
	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 67, resp.Percentage)

	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Correct)
	assert.False(t, resp.Results[1].Correct)
	assert.Equal(t, "the movement of water molecules", resp.Results[1].CorrectAnswer)
	assert.True(t, resp.Results[2].Correct)

	require.NotNil(t, savedAttempt)
	assert.Equal(t, "quiz-1", savedAttempt.QuizID)
	assert.Equal(t, 2, savedAttempt.Score)
	assert.Equal(t, 67, savedAttempt.Percentage)
}

func TestGradeSubmission_FallsBackToRepositoryAndReprimesCache(t *testing.T) {
	stored := &domain.Quiz{
		ID: "quiz-1",
		Questions: []domain.Question{
			{ID: "q1", Type: domain.TrueFalse, CorrectAnswer: "true"},
		},
	}
	reprimed := false
	repo := &mockQuizRepository{
		GetQuizByIDFn: func(ctx context.Context, id string) (*domain.Quiz, error) {
			return stored, nil
		},
	}
	answerKeys := &mockAnswerKeyCache{
		GetFn: func(ctx context.Context, quizID string) (map[string]domain.Question, error) {
			return nil, ErrAnswerKeyNotFound
		},
		PutFn: func(ctx context.Context, quiz *domain.Quiz) error {
			reprimed = true
			assert.Equal(t, "quiz-1", quiz.ID)
			return nil
		},
	}
	svc := newTestService(repo, answerKeys)

	resp, err := svc.GradeSubmission(context.Background(), "quiz-1", &dto.GradeRequest{
		Answers: []dto.SubmittedAnswer{{QuestionID: "q1", Answer: "false"}},
	})

	require.NoError(t, err)
	assert.True(t, reprimed)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 0, resp.Percentage)
}

func TestGradeSubmission_RejectsEmptyAnswers(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	resp, err := svc.GradeSubmission(context.Background(), "quiz-1", &dto.GradeRequest{})

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInvalidInput, domainErrorCode(t, err))
}

func TestGradeSubmission_UnknownQuestionID(t *testing.T) {
	answerKeys := &mockAnswerKeyCache{
		GetFn: func(ctx context.Context, quizID string) (map[string]domain.Question, error) {
			return gradeAnswerKey(), nil
		},
	}
	svc := newTestService(&mockQuizRepository{}, answerKeys)

	resp, err := svc.GradeSubmission(context.Background(), "quiz-1", &dto.GradeRequest{
		Answers: []dto.SubmittedAnswer{{QuestionID: "nope", Answer: "true"}},
	})

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInvalidAnswer, domainErrorCode(t, err))
}

func TestGradeSubmission_QuizNotFound(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	resp, err := svc.GradeSubmission(context.Background(), "ghost", &dto.GradeRequest{
		Answers: []dto.SubmittedAnswer{{QuestionID: "q1", Answer: "true"}},
	})

	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeQuizNotFound, domainErrorCode(t, err))
}

func TestListAttempts_ReturnsRecordedSubmissions(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	repo := &mockQuizRepository{
		GetQuizByIDFn: func(ctx context.Context, id string) (*domain.Quiz, error) {
			return &domain.Quiz{ID: id}, nil
		},
		GetAttemptsByQuizIDFn: func(ctx context.Context, quizID string) ([]*domain.QuizAttempt, error) {
			return []*domain.QuizAttempt{
				{
					ID:     "attempt-1",
					QuizID: quizID,
					Results: []domain.AnswerResult{
						{QuestionID: "q1", UserAnswer: "true", Correct: true},
					},
					Score:      1,
					Percentage: 100,
					CreatedAt:  created,
				},
			}, nil
		},
	}
	svc := newTestService(repo, &mockAnswerKeyCache{})

	attempts, err := svc.ListAttempts(context.Background(), "quiz-1")

	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "attempt-1", attempts[0].ID)
	assert.Equal(t, 100, attempts[0].Percentage)
	assert.Equal(t, "2025-06-01T12:30:00Z", attempts[0].CreatedAt)
	require.Len(t, attempts[0].Results, 1)
	assert.Equal(t, "true", attempts[0].Results[0].UserAnswer)
}

func TestListAttempts_QuizNotFound(t *testing.T) {
	svc := newTestService(&mockQuizRepository{}, &mockAnswerKeyCache{})

	attempts, err := svc.ListAttempts(context.Background(), "ghost")

	assert.Nil(t, attempts)
	assert.Equal(t, domain.CodeQuizNotFound, domainErrorCode(t, err))
}

func TestGradeSubmission_AttemptSaveFailureIsNotFatal(t *testing.T) {
	repo := &mockQuizRepository{
		SaveAttemptFn: func(ctx context.Context, attempt *domain.QuizAttempt) error {
			return errors.New("disk full")
		},
	}
	answerKeys := &mockAnswerKeyCache{
		GetFn: func(ctx context.Context, quizID string) (map[string]domain.Question, error) {
			return gradeAnswerKey(), nil
		},
	}
	svc := newTestService(repo, answerKeys)

	resp, err := svc.GradeSubmission(context.Background(), "quiz-1", &dto.GradeRequest{
		Answers: []dto.SubmittedAnswer{{QuestionID: "q1", Answer: "true"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 100, resp.Percentage)
}
