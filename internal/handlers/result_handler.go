package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/repositories"
)

type ResultHandler struct {
	interviewRepo repositories.InterviewRepository
	scoreRepo     repositories.ScoreRepository
}

func NewResultHandler(
	interviewRepo repositories.InterviewRepository,
	scoreRepo repositories.ScoreRepository,
) *ResultHandler {
	return &ResultHandler{
		interviewRepo: interviewRepo,
		scoreRepo:     scoreRepo,
	}
}

// HandleGetResult handles GET /interviews/:id/score
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	interviewID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	if _, err := h.interviewRepo.FindByID(interviewID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	score, err := h.scoreRepo.FindLatestByInterviewID(interviewID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Score not found for interview",
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
