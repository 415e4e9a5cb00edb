package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/repositories"
	"farhanmaulana/hire-screener/pkg/logging"
)

func TestHeuristicAnswerScorerLengthBuckets(t *testing.T) {
	scorer := NewHeuristicAnswerScorer()
	question := models.Question{Text: "Q?", Category: models.CategoryTechnical}

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"empty answer", "", 0},
		{"very short answer", strings.Repeat("x", 10), 0},
		{"short answer", strings.Repeat("x", 11), 10},
		{"medium answer", strings.Repeat("x", 60), 20},
		{"long answer", strings.Repeat("x", 150), 30},
		{"very long answer", strings.Repeat("x", 250), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, err := scorer.Score(context.Background(), ScoringInput{
				Questions: []models.Question{question},
				Answers:   []string{tt.answer},
			})

			require.NoError(t, err)
			require.Len(t, feedback, 1)
			assert.Equal(t, tt.want, feedback[0].Score)
		})
	}
}

func TestHeuristicAnswerScorerKeywordAndStructure(t *testing.T) {
	scorer := NewHeuristicAnswerScorer()

	// 250 chars of filler plus a job-skill keyword and a reasoning connective:
	// 40 length + 10 keyword + 10 structure
	answer := strings.Repeat("x", 240) + " React because"

	feedback, err := scorer.Score(context.Background(), ScoringInput{
		Questions: []models.Question{{Text: "Q?"}},
		Answers:   []string{answer},
		JobSkills: []string{"React"},
	})

	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, 60, feedback[0].Score)
}

func TestHeuristicAnswerScorerCapsKeywordScore(t *testing.T) {
	scorer := NewHeuristicAnswerScorer()

	// Six job skills present would be 60 keyword points without the cap
	answer := strings.Repeat("x", 250) + " react vue angular svelte ember solid for example because"

	feedback, err := scorer.Score(context.Background(), ScoringInput{
		Questions: []models.Question{{Text: "Q?"}},
		Answers:   []string{answer},
		JobSkills: []string{"React", "Vue", "Angular", "Svelte", "Ember", "Solid"},
	})

	require.NoError(t, err)
	// 40 length + 40 keywords (capped) + 20 structure
	assert.Equal(t, 100, feedback[0].Score)
}

func TestHeuristicAnswerScorerFeedbackText(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{85, "Good response with relevant content"},
		{70, "Good response with relevant content"},
		{55, "Adequate but could be more detailed"},
		{40, "Adequate but could be more detailed"},
		{20, "Answer needs more depth and relevance"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, heuristicFeedback(tt.score), "score=%d", tt.score)
	}
}

func TestHeuristicAnswerScorerOneEntryPerQuestion(t *testing.T) {
	scorer := NewHeuristicAnswerScorer()

	questions := []models.Question{
		{Text: "First question?"},
		{Text: "Second question?"},
		{Text: "Third question?"},
	}

	// Fewer answers than questions: missing answers score as empty
	feedback, err := scorer.Score(context.Background(), ScoringInput{
		Questions: questions,
		Answers:   []string{"only one answer given here"},
	})

	require.NoError(t, err)
	require.Len(t, feedback, 3)
	assert.Equal(t, "First question?", feedback[0].Question)
	assert.Equal(t, 0, feedback[1].Score)
	assert.Equal(t, 0, feedback[2].Score)
}

func TestMeanScore(t *testing.T) {
	assert.Equal(t, 0, meanScore(nil))
	assert.Equal(t, 50, meanScore([]models.QuestionFeedback{{Score: 40}, {Score: 60}}))
	// 70+75+80 = 225 / 3 = 75
	assert.Equal(t, 75, meanScore([]models.QuestionFeedback{{Score: 70}, {Score: 75}, {Score: 80}}))
	// 1+2 = 3 / 2 = 1.5, rounds to 2
	assert.Equal(t, 2, meanScore([]models.QuestionFeedback{{Score: 1}, {Score: 2}}))
}

type stubScoreRepo struct {
	created *models.Score
	score   *models.Score
	findErr error
}

func (s *stubScoreRepo) Create(score *models.Score) error {
	s.created = score
	return nil
}

func (s *stubScoreRepo) FindLatestByInterviewID(_ uuid.UUID) (*models.Score, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.score, nil
}

type stubSettingRepo struct {
	weights models.ScoreWeights
}

func (s *stubSettingRepo) ScoreWeights() models.ScoreWeights {
	return s.weights
}

func TestScoreServiceCalculatesAndPersists(t *testing.T) {
	interviewID := uuid.New()
	appID := uuid.New()
	jobID := uuid.New()
	candidateID := uuid.New()

	interviewRepo := &stubInterviewRepo{interview: &models.Interview{
		ID:            interviewID,
		ApplicationID: appID,
		Questions: models.QuestionList{
			{Text: "Tell us about React.", Category: models.CategoryTechnical},
			{Text: "How do you learn?", Category: models.CategoryGapAssessment},
		},
		Status: models.InterviewInProgress,
	}}
	appRepo := &stubApplicationRepo{app: &models.Application{
		ID:          appID,
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      models.ApplicationInterviewing,
	}}
	jobRepo := &stubJobRepo{job: &models.Job{
		ID:              jobID,
		Title:           "Senior React Developer",
		Skills:          pq.StringArray{"React", "TypeScript"},
		ExperienceLevel: models.LevelSenior,
	}}
	profileRepo := &stubProfileRepo{profile: &models.Profile{
		ID:           candidateID,
		Name:         "Alice Johnson",
		Email:        "alice@example.com",
		Title:        "Senior Developer",
		Experience:   "6 years",
		ResumeSkills: pq.StringArray{"React", "TypeScript"},
	}}
	scoreRepo := &stubScoreRepo{}
	settingRepo := &stubSettingRepo{weights: models.ScoreWeights{Resume: 40, Interview: 60}}

	svc := NewScoreService(
		interviewRepo, appRepo, jobRepo, profileRepo, scoreRepo, settingRepo,
		nil, time.Second, logging.NewNop(),
	)

	answers := []string{
		strings.Repeat("I built dashboards with React and TypeScript because they scale well. ", 4),
		strings.Repeat("I read docs and build side projects, for example small CLIs. ", 4),
	}

	score, err := svc.CalculateForInterview(context.Background(), interviewID, answers)

	require.NoError(t, err)
	require.NotNil(t, score)

	// Full skill match, matching experience, complete profile
	assert.Equal(t, 100, score.ResumeScore)
	assert.Greater(t, score.InterviewScore, 0)
	assert.Equal(t, TotalScore(score.ResumeScore, score.InterviewScore, settingRepo.weights), score.TotalScore)
	assert.Equal(t, DecideStatus(score.TotalScore), score.Status)

	require.Len(t, score.Feedback.QuestionFeedback, 2)
	assert.Equal(t, []string{"React", "TypeScript"}, score.Feedback.ResumeDetails.MatchingSkills)
	assert.Equal(t, 100, score.Feedback.ResumeDetails.SkillMatchPercentage)
	assert.Equal(t, settingRepo.weights, score.Feedback.Weights)

	assert.True(t, interviewRepo.completed)
	assert.Equal(t, answers, interviewRepo.answers)
	require.NotNil(t, scoreRepo.created)
	assert.Equal(t, score.ID, scoreRepo.created.ID)
	assert.Equal(t, ApplicationStatusFor(score.Status), appRepo.lastStatus)
}

func TestScoreServiceAIFailureFallsBackToHeuristic(t *testing.T) {
	interviewID := uuid.New()

	interviewRepo := &stubInterviewRepo{interview: &models.Interview{
		ID: interviewID,
		Questions: models.QuestionList{
			{Text: "Describe your approach to testing."},
		},
	}}
	appRepo := &stubApplicationRepo{findErr: repositories.ErrNotFound}
	scoreRepo := &stubScoreRepo{}

	failing := NewAIAnswerScorer(&stubGemini{err: errors.New("quota exceeded")})

	svc := NewScoreService(
		interviewRepo, appRepo, &stubJobRepo{}, &stubProfileRepo{}, scoreRepo,
		&stubSettingRepo{weights: models.ScoreWeights{Resume: 40, Interview: 60}},
		failing, time.Second, logging.NewNop(),
	)

	score, err := svc.CalculateForInterview(context.Background(), interviewID, []string{"short"})

	require.NoError(t, err)
	require.Len(t, score.Feedback.QuestionFeedback, 1)
	// Heuristic feedback, not an AI phrase
	assert.Equal(t, "Answer needs more depth and relevance", score.Feedback.QuestionFeedback[0].Feedback)
}

func TestScoreServiceUnknownInterview(t *testing.T) {
	interviewRepo := &stubInterviewRepo{findErr: repositories.ErrNotFound}

	svc := NewScoreService(
		interviewRepo, &stubApplicationRepo{}, &stubJobRepo{}, &stubProfileRepo{},
		&stubScoreRepo{}, &stubSettingRepo{}, nil, time.Second, logging.NewNop(),
	)

	_, err := svc.CalculateForInterview(context.Background(), uuid.New(), []string{"answer"})

	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestAIAnswerScorer(t *testing.T) {
	questions := []models.Question{
		{Text: "What is a goroutine?"},
		{Text: "Explain channels."},
	}
	input := ScoringInput{
		Questions: questions,
		Answers:   []string{"a lightweight thread", "typed conduits"},
		JobSkills: []string{"Go"},
	}

	t.Run("parses and clamps scores", func(t *testing.T) {
		stub := &stubGemini{response: "```json\n[{\"score\": 150, \"feedback\": \"great\"}, {\"score\": -5, \"feedback\": \"\"}]\n```"}
		scorer := NewAIAnswerScorer(stub)

		feedback, err := scorer.Score(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, feedback, 2)
		assert.Equal(t, 100, feedback[0].Score)
		assert.Equal(t, "great", feedback[0].Feedback)
		assert.Equal(t, 0, feedback[1].Score)
		assert.Equal(t, "Evaluated by AI", feedback[1].Feedback)
		assert.Equal(t, "What is a goroutine?", feedback[0].Question)
		assert.Contains(t, stub.lastPrompt, "What is a goroutine?")
	})

	t.Run("count mismatch is an error", func(t *testing.T) {
		stub := &stubGemini{response: `[{"score": 80, "feedback": "only one"}]`}
		scorer := NewAIAnswerScorer(stub)

		_, err := scorer.Score(context.Background(), input)

		assert.Error(t, err)
	})

	t.Run("no JSON array is an error", func(t *testing.T) {
		stub := &stubGemini{response: "I cannot evaluate these answers."}
		scorer := NewAIAnswerScorer(stub)

		_, err := scorer.Score(context.Background(), input)

		assert.Error(t, err)
	})
}
