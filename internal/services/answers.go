package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/repositories"
	"farhanmaulana/hire-screener/pkg/logging"
)

var ErrInterviewNotFound = errors.New("interview not found")

// ScoringInput pairs the interview questions with the candidate's answers,
// aligned by index.
type ScoringInput struct {
	Questions []models.Question
	Answers   []string
	JobSkills []string
}

// AnswerScorer produces one feedback entry per question. The AI-backed scorer
// may fail; the heuristic scorer never does.
type AnswerScorer interface {
	Score(ctx context.Context, input ScoringInput) ([]models.QuestionFeedback, error)
}

type ScoreService interface {
	CalculateForInterview(ctx context.Context, interviewID uuid.UUID, answers []string) (*models.Score, error)
}

type scoreService struct {
	interviewRepo repositories.InterviewRepository
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	profileRepo   repositories.ProfileRepository
	scoreRepo     repositories.ScoreRepository
	settingRepo   repositories.SettingRepository
	ai            AnswerScorer // nil when no AI credentials are configured
	fallback      AnswerScorer
	aiTimeout     time.Duration
	log           *logging.Logger
}

func NewScoreService(
	interviewRepo repositories.InterviewRepository,
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	scoreRepo repositories.ScoreRepository,
	settingRepo repositories.SettingRepository,
	ai AnswerScorer,
	aiTimeout time.Duration,
	log *logging.Logger,
) ScoreService {
	return &scoreService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		profileRepo:   profileRepo,
		scoreRepo:     scoreRepo,
		settingRepo:   settingRepo,
		ai:            ai,
		fallback:      NewHeuristicAnswerScorer(),
		aiTimeout:     aiTimeout,
		log:           log,
	}
}

// CalculateForInterview scores the answers, re-derives the resume score,
// combines both with the configured weights, persists the answers and a new
// score row, and projects the hiring status onto the application.
func (s *scoreService) CalculateForInterview(ctx context.Context, interviewID uuid.UUID, answers []string) (*models.Score, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to load interview: %w", err)
	}

	// Missing collaborator rows degrade to zero values rather than failing.
	var app *models.Application
	job := &models.Job{ExperienceLevel: models.LevelMid}
	profile := &models.Profile{}

	app, err = s.appRepo.FindByID(interview.ApplicationID)
	if err != nil {
		s.log.Warn("application not loaded", "application_id", interview.ApplicationID, "error", err)
		app = nil
	} else {
		if j, err := s.jobRepo.FindByID(app.JobID); err != nil {
			s.log.Warn("job not loaded, using defaults", "job_id", app.JobID, "error", err)
		} else {
			job = j
		}
		if p, err := s.profileRepo.FindByID(app.CandidateID); err != nil {
			s.log.Warn("profile not loaded, using defaults", "candidate_id", app.CandidateID, "error", err)
		} else {
			profile = p
		}
	}

	weights := s.settingRepo.ScoreWeights()

	match := MatchSkills(profile.ResumeSkills, job.Skills)
	resumeScore := ScoreResume(match, job.Skills, job.ExperienceLevel, profile)

	feedback := s.scoreAnswers(ctx, ScoringInput{
		Questions: interview.Questions,
		Answers:   answers,
		JobSkills: job.Skills,
	})
	interviewScore := meanScore(feedback)

	totalScore := TotalScore(resumeScore, interviewScore, weights)
	status := DecideStatus(totalScore)

	s.log.Info("scores calculated",
		"interview_id", interview.ID,
		"resume_score", resumeScore,
		"interview_score", interviewScore,
		"total_score", totalScore,
		"status", status)

	if err := s.interviewRepo.Complete(interview.ID, answers); err != nil {
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	score := &models.Score{
		ID:             uuid.New(),
		InterviewID:    interview.ID,
		ResumeScore:    resumeScore,
		InterviewScore: interviewScore,
		TotalScore:     totalScore,
		Status:         status,
		Feedback: models.ScoreFeedback{
			QuestionFeedback: feedback,
			ResumeDetails: models.ResumeDetails{
				MatchingSkills:       match.Matching,
				GapSkills:            match.Gaps,
				SkillMatchPercentage: match.MatchPercentage,
			},
			Weights: weights,
		},
		CreatedAt: time.Now(),
	}

	if err := s.scoreRepo.Create(score); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	if app != nil {
		if err := s.appRepo.UpdateStatus(app.ID, ApplicationStatusFor(status)); err != nil {
			s.log.Warn("failed to update application status", "application_id", app.ID, "error", err)
		}
	}

	return score, nil
}

func (s *scoreService) scoreAnswers(ctx context.Context, input ScoringInput) []models.QuestionFeedback {
	if s.ai != nil && len(input.Answers) > 0 {
		aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		defer cancel()

		feedback, err := s.ai.Score(aiCtx, input)
		if err == nil {
			s.log.Info("AI scored answers", "count", len(feedback))
			return feedback
		}
		s.log.Warn("AI answer scoring failed, using fallback", "error", err)
	}

	feedback, _ := s.fallback.Score(ctx, input)
	return feedback
}

// meanScore averages the per-question scores, rounded. Zero questions means
// a zero interview score.
func meanScore(feedback []models.QuestionFeedback) int {
	if len(feedback) == 0 {
		return 0
	}

	total := 0
	for _, f := range feedback {
		total += f.Score
	}
	return int(math.Round(float64(total) / float64(len(feedback))))
}

type aiAnswerScorer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewAIAnswerScorer(gemini GeminiService) AnswerScorer {
	return &aiAnswerScorer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// Score implements AnswerScorer. The response must carry one entry per
// question; anything else counts as a failed attempt so the heuristic path
// keeps the question/feedback alignment intact.
func (s *aiAnswerScorer) Score(ctx context.Context, input ScoringInput) ([]models.QuestionFeedback, error) {
	prompt := s.promptBuilder.BuildAnswerScoringPrompt(input.JobSkills, input.Questions, input.Answers)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to score answers: %w", err)
	}

	raw, ok := extractJSONArray(response)
	if !ok {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var scores []struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse scores: %w", err)
	}

	if len(scores) != len(input.Questions) {
		return nil, fmt.Errorf("got %d scores for %d questions", len(scores), len(input.Questions))
	}

	feedback := make([]models.QuestionFeedback, 0, len(scores))
	for i, entry := range scores {
		text := entry.Feedback
		if text == "" {
			text = "Evaluated by AI"
		}
		feedback = append(feedback, models.QuestionFeedback{
			Question: input.Questions[i].Text,
			Score:    clampScore(entry.Score),
			Feedback: text,
		})
	}

	return feedback, nil
}

type heuristicAnswerScorer struct{}

// NewHeuristicAnswerScorer returns the deterministic keyword-based scorer.
func NewHeuristicAnswerScorer() AnswerScorer {
	return &heuristicAnswerScorer{}
}

// Score implements AnswerScorer. Never errors.
func (s *heuristicAnswerScorer) Score(_ context.Context, input ScoringInput) ([]models.QuestionFeedback, error) {
	feedback := make([]models.QuestionFeedback, 0, len(input.Questions))

	for i, question := range input.Questions {
		answer := ""
		if i < len(input.Answers) {
			answer = input.Answers[i]
		}

		score := scoreAnswerHeuristically(question.Text, answer, input.JobSkills)

		feedback = append(feedback, models.QuestionFeedback{
			Question: question.Text,
			Score:    score,
			Feedback: heuristicFeedback(score),
		})
	}

	return feedback, nil
}

// scoreAnswerHeuristically sums three bounded contributions: answer length
// (max 40), keyword relevance (max 40), and structure markers (max 20),
// clamped to 100.
func scoreAnswerHeuristically(questionText, answer string, jobSkills []string) int {
	score := 0

	// Length buckets
	switch {
	case len(answer) > 200:
		score += 40
	case len(answer) > 100:
		score += 30
	case len(answer) > 50:
		score += 20
	case len(answer) > 10:
		score += 10
	}

	// Keyword relevance: job skills count 10 each, question words of 5+
	// characters count 5 each
	answerLower := strings.ToLower(answer)

	skillHits := 0
	for _, skill := range jobSkills {
		if strings.Contains(answerLower, strings.ToLower(skill)) {
			skillHits++
		}
	}

	wordHits := 0
	for _, word := range strings.Fields(strings.ToLower(questionText)) {
		if len(word) > 4 && strings.Contains(answerLower, word) {
			wordHits++
		}
	}

	keywordScore := skillHits*10 + wordHits*5
	if keywordScore > 40 {
		keywordScore = 40
	}
	score += keywordScore

	// Structure bonus
	if strings.Contains(answer, "example") || strings.Contains(answer, "instance") {
		score += 10
	}
	if strings.Contains(answer, "because") || strings.Contains(answer, "therefore") || strings.Contains(answer, "approach") {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func heuristicFeedback(score int) string {
	switch {
	case score >= 70:
		return "Good response with relevant content"
	case score >= 40:
		return "Adequate but could be more detailed"
	default:
		return "Answer needs more depth and relevance"
	}
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}
