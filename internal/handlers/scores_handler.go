package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
	validate     *validator.Validate
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
		validate:     validator.New(),
	}
}

// HandleCalculateScores handles POST /calculate-scores
func (h *ScoreHandler) HandleCalculateScores(c *fiber.Ctx) error {
	var req models.CalculateScoresRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	// An empty answers array is legal; an absent one is not.
	if err := h.validate.Struct(&req); err != nil || req.Answers == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "interview_id and answers are required",
		})
	}

	interviewID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview_id format",
		})
	}

	score, err := h.scoreService.CalculateForInterview(c.UserContext(), interviewID, req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.CalculateScoresResponse{
		ScoreID:        score.ID.String(),
		ResumeScore:    score.ResumeScore,
		InterviewScore: score.InterviewScore,
		TotalScore:     score.TotalScore,
		Status:         score.Status,
		Feedback:       score.Feedback,
	})
}
