package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/repositories"
	"farhanmaulana/hire-screener/internal/services"
)

type stubQuestionService struct {
	interview *models.Interview
	err       error
}

func (s *stubQuestionService) GenerateForApplication(_ context.Context, _ uuid.UUID) (*models.Interview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.interview, nil
}

type stubScoreService struct {
	score   *models.Score
	err     error
	answers []string
}

func (s *stubScoreService) CalculateForInterview(_ context.Context, _ uuid.UUID, answers []string) (*models.Score, error) {
	s.answers = answers
	if s.err != nil {
		return nil, s.err
	}
	return s.score, nil
}

type stubInterviewRepo struct {
	interview *models.Interview
	err       error
}

func (s *stubInterviewRepo) Create(_ *models.Interview) error { return nil }

func (s *stubInterviewRepo) FindByID(_ uuid.UUID) (*models.Interview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.interview, nil
}

func (s *stubInterviewRepo) Complete(_ uuid.UUID, _ []string) error { return nil }

type stubScoreRepo struct {
	score *models.Score
	err   error
}

func (s *stubScoreRepo) Create(_ *models.Score) error { return nil }

func (s *stubScoreRepo) FindLatestByInterviewID(_ uuid.UUID) (*models.Score, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.score, nil
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestHandleGenerateQuestions(t *testing.T) {
	interview := &models.Interview{
		ID: uuid.New(),
		Questions: models.QuestionList{
			{Text: "Explain your experience with React.", TimeSeconds: 120, Category: models.CategoryTechnical},
		},
	}

	newApp := func(svc services.QuestionService) *fiber.App {
		app := fiber.New()
		app.Post("/generate-questions", NewQuestionHandler(svc).HandleGenerateQuestions)
		return app
	}

	t.Run("success", func(t *testing.T) {
		app := newApp(&stubQuestionService{interview: interview})

		resp := postJSON(t, app, "/generate-questions",
			fmt.Sprintf(`{"application_id": %q}`, uuid.New()))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out models.GenerateQuestionsResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, interview.ID.String(), out.InterviewID)
		require.Len(t, out.Questions, 1)
		assert.Equal(t, "Explain your experience with React.", out.Questions[0].Text)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newApp(&stubQuestionService{interview: interview})

		resp := postJSON(t, app, "/generate-questions", `{not json`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing application_id", func(t *testing.T) {
		app := newApp(&stubQuestionService{interview: interview})

		resp := postJSON(t, app, "/generate-questions", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "application_id is required", out["error"])
	})

	t.Run("invalid uuid", func(t *testing.T) {
		app := newApp(&stubQuestionService{interview: interview})

		resp := postJSON(t, app, "/generate-questions", `{"application_id": "not-a-uuid"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown application", func(t *testing.T) {
		app := newApp(&stubQuestionService{err: services.ErrApplicationNotFound})

		resp := postJSON(t, app, "/generate-questions",
			fmt.Sprintf(`{"application_id": %q}`, uuid.New()))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "Application not found", out["error"])
	})
}

func TestHandleCalculateScores(t *testing.T) {
	score := &models.Score{
		ID:             uuid.New(),
		ResumeScore:    80,
		InterviewScore: 70,
		TotalScore:     74,
		Status:         models.ScoreUnderReview,
		Feedback: models.ScoreFeedback{
			QuestionFeedback: []models.QuestionFeedback{
				{Question: "Q1", Score: 70, Feedback: "Good response with relevant content"},
			},
			Weights: models.ScoreWeights{Resume: 40, Interview: 60},
		},
	}

	newApp := func(svc services.ScoreService) *fiber.App {
		app := fiber.New()
		app.Post("/calculate-scores", NewScoreHandler(svc).HandleCalculateScores)
		return app
	}

	t.Run("success", func(t *testing.T) {
		svc := &stubScoreService{score: score}
		app := newApp(svc)

		resp := postJSON(t, app, "/calculate-scores",
			fmt.Sprintf(`{"interview_id": %q, "answers": ["first answer", "second answer"]}`, uuid.New()))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"first answer", "second answer"}, svc.answers)

		var out models.CalculateScoresResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, score.ID.String(), out.ScoreID)
		assert.Equal(t, 74, out.TotalScore)
		assert.Equal(t, models.ScoreUnderReview, out.Status)
		require.Len(t, out.Feedback.QuestionFeedback, 1)
	})

	t.Run("empty answers array is accepted", func(t *testing.T) {
		app := newApp(&stubScoreService{score: score})

		resp := postJSON(t, app, "/calculate-scores",
			fmt.Sprintf(`{"interview_id": %q, "answers": []}`, uuid.New()))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("absent answers field is rejected", func(t *testing.T) {
		app := newApp(&stubScoreService{score: score})

		resp := postJSON(t, app, "/calculate-scores",
			fmt.Sprintf(`{"interview_id": %q}`, uuid.New()))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "interview_id and answers are required", out["error"])
	})

	t.Run("missing interview_id", func(t *testing.T) {
		app := newApp(&stubScoreService{score: score})

		resp := postJSON(t, app, "/calculate-scores", `{"answers": ["a"]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown interview", func(t *testing.T) {
		app := newApp(&stubScoreService{err: services.ErrInterviewNotFound})

		resp := postJSON(t, app, "/calculate-scores",
			fmt.Sprintf(`{"interview_id": %q, "answers": ["a"]}`, uuid.New()))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleGetResult(t *testing.T) {
	interviewID := uuid.New()
	interview := &models.Interview{ID: interviewID, Status: models.InterviewCompleted}
	score := &models.Score{
		ID:          uuid.New(),
		InterviewID: interviewID,
		TotalScore:  82,
		Status:      models.ScorePassed,
	}

	newApp := func(interviewRepo repositories.InterviewRepository, scoreRepo repositories.ScoreRepository) *fiber.App {
		app := fiber.New()
		app.Get("/interviews/:id/score", NewResultHandler(interviewRepo, scoreRepo).HandleGetResult)
		return app
	}

	get := func(t *testing.T, app *fiber.App, path string) *http.Response {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		app := newApp(&stubInterviewRepo{interview: interview}, &stubScoreRepo{score: score})

		resp := get(t, app, "/interviews/"+interviewID.String()+"/score")

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out models.CalculateScoresResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, score.ID.String(), out.ScoreID)
		assert.Equal(t, 82, out.TotalScore)
	})

	t.Run("invalid id", func(t *testing.T) {
		app := newApp(&stubInterviewRepo{interview: interview}, &stubScoreRepo{score: score})

		resp := get(t, app, "/interviews/nope/score")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown interview", func(t *testing.T) {
		app := newApp(&stubInterviewRepo{err: repositories.ErrNotFound}, &stubScoreRepo{score: score})

		resp := get(t, app, "/interviews/"+interviewID.String()+"/score")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("interview without score", func(t *testing.T) {
		app := newApp(&stubInterviewRepo{interview: interview}, &stubScoreRepo{err: repositories.ErrNotFound})

		resp := get(t, app, "/interviews/"+interviewID.String()+"/score")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "Score not found for interview", out["error"])
	})
}
