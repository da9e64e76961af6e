package handler

import (
	"io"

	"docquiz/internal/domain"
	"docquiz/internal/dto"
	"docquiz/internal/logger"
	"docquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz handles POST /api/quizzes. It accepts either a JSON body with
// a "text" field or a multipart upload with a "document" part; PDF uploads go
// through binary text salvage. Errors propagate to the error middleware.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	if fileHeader, err := c.FormFile("document"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return domain.NewInvalidInputError("could not open uploaded document")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return domain.NewInvalidInputError("could not read uploaded document")
		}

		logger.Get().Info("Generating quiz from document",
			zap.String("filename", fileHeader.Filename),
			zap.Int("bytes", len(data)),
		)
		quiz, err := h.service.GenerateFromDocument(c.Context(), fileHeader.Filename, data)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(quiz)
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with a text field or a multipart document")
	}
	if req.Text == "" {
		return domain.NewInvalidInputError("text is required")
	}

	quiz, err := h.service.GenerateFromText(c.Context(), req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz handles GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	quiz, err := h.service.GetQuiz(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetQuizAttempts handles GET /api/quizzes/:id/attempts
func (h *QuizHandler) GetQuizAttempts(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	attempts, err := h.service.ListAttempts(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// GradeQuiz handles POST /api/quizzes/:id/grade
func (h *QuizHandler) GradeQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with an answers array")
	}

	result, err := h.service.GradeSubmission(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
