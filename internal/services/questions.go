package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"farhanmaulana/hire-screener/internal/models"
	"farhanmaulana/hire-screener/internal/repositories"
	"farhanmaulana/hire-screener/pkg/logging"
)

var ErrApplicationNotFound = errors.New("application not found")

// QuestionPlan is everything a question source needs about the role and the
// candidate.
type QuestionPlan struct {
	JobTitle        string
	JobDescription  string
	ExperienceLevel models.ExperienceLevel
	JobSkills       []string
	ResumeSkills    []string
	Match           SkillMatch
}

// QuestionSource produces interview questions for a plan. The AI-backed
// source may fail; the template source never does.
type QuestionSource interface {
	Generate(ctx context.Context, plan QuestionPlan) ([]models.Question, error)
}

type QuestionService interface {
	GenerateForApplication(ctx context.Context, applicationID uuid.UUID) (*models.Interview, error)
}

type questionService struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	profileRepo   repositories.ProfileRepository
	interviewRepo repositories.InterviewRepository
	ai            QuestionSource         // nil when no AI credentials are configured
	fallback      QuestionSource
	archive       QuestionArchiveService // nil when the archive is disabled
	aiTimeout     time.Duration
	log           *logging.Logger
}

func NewQuestionService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	interviewRepo repositories.InterviewRepository,
	ai QuestionSource,
	archive QuestionArchiveService,
	aiTimeout time.Duration,
	log *logging.Logger,
) QuestionService {
	return &questionService{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		profileRepo:   profileRepo,
		interviewRepo: interviewRepo,
		ai:            ai,
		fallback:      NewTemplateQuestionSource(),
		archive:       archive,
		aiTimeout:     aiTimeout,
		log:           log,
	}
}

// GenerateForApplication produces exactly 5 questions for the application,
// persists them as a new in-progress interview, and flips the application to
// interviewing. AI failures are absorbed by the template fallback and never
// surfaced to the caller.
func (s *questionService) GenerateForApplication(ctx context.Context, applicationID uuid.UUID) (*models.Interview, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	plan := s.buildPlan(app)

	questions := s.generateQuestions(ctx, plan)

	interview := &models.Interview{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		Questions:     questions,
		Status:        models.InterviewInProgress,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	if err := s.appRepo.UpdateStatus(app.ID, models.ApplicationInterviewing); err != nil {
		s.log.Warn("failed to update application status", "application_id", app.ID, "error", err)
	}

	if s.archive != nil {
		if err := s.archive.ArchiveQuestions(ctx, interview.ID.String(), plan.JobTitle, questions); err != nil {
			s.log.Warn("failed to archive questions", "interview_id", interview.ID, "error", err)
		}
	}

	s.log.Info("interview created",
		"interview_id", interview.ID,
		"application_id", app.ID,
		"questions", len(questions))

	return interview, nil
}

// buildPlan loads job and candidate data. Both reads are tolerant: a missing
// job or profile degrades to defaults rather than failing the request.
func (s *questionService) buildPlan(app *models.Application) QuestionPlan {
	plan := QuestionPlan{
		JobTitle:        "Software Developer",
		ExperienceLevel: models.LevelMid,
	}

	if job, err := s.jobRepo.FindByID(app.JobID); err != nil {
		s.log.Warn("job not loaded, using defaults", "job_id", app.JobID, "error", err)
	} else {
		plan.JobTitle = job.Title
		plan.JobDescription = job.Description
		plan.ExperienceLevel = job.ExperienceLevel
		plan.JobSkills = job.Skills
	}

	if profile, err := s.profileRepo.FindByID(app.CandidateID); err != nil {
		s.log.Warn("profile not loaded, using defaults", "candidate_id", app.CandidateID, "error", err)
	} else {
		plan.ResumeSkills = profile.ResumeSkills
	}

	plan.Match = MatchSkills(plan.ResumeSkills, plan.JobSkills)
	return plan
}

func (s *questionService) generateQuestions(ctx context.Context, plan QuestionPlan) []models.Question {
	if s.ai != nil {
		aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		defer cancel()

		questions, err := s.ai.Generate(aiCtx, plan)
		if err == nil && len(questions) > 0 {
			s.log.Info("AI generated questions", "count", len(questions))
			return questions
		}
		s.log.Warn("AI question generation failed, using fallback", "error", err)
	}

	questions, _ := s.fallback.Generate(ctx, plan)
	return questions
}

type aiQuestionSource struct {
	gemini        GeminiService
	archive       QuestionArchiveService // nil when disabled
	promptBuilder *PromptBuilder
	log           *logging.Logger
}

func NewAIQuestionSource(gemini GeminiService, archive QuestionArchiveService, log *logging.Logger) QuestionSource {
	return &aiQuestionSource{
		gemini:        gemini,
		archive:       archive,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// Generate implements QuestionSource.
func (s *aiQuestionSource) Generate(ctx context.Context, plan QuestionPlan) ([]models.Question, error) {
	var recent []string
	if s.archive != nil {
		previous, err := s.archive.SimilarQuestions(ctx, plan.JobTitle, plan.JobSkills, 3)
		if err != nil {
			s.log.Warn("question archive lookup failed", "error", err)
		} else {
			recent = previous
		}
	}

	prompt := s.promptBuilder.BuildQuestionPrompt(
		plan.JobTitle, plan.JobDescription, plan.ExperienceLevel,
		plan.JobSkills, plan.ResumeSkills, plan.Match, recent,
	)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	raw, ok := extractJSONArray(response)
	if !ok {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var questions []models.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("empty question array in response")
	}

	return questions, nil
}

type templateQuestionSource struct{}

// NewTemplateQuestionSource returns the deterministic question source. It
// always yields exactly 5 questions and never errors.
func NewTemplateQuestionSource() QuestionSource {
	return &templateQuestionSource{}
}

// Generate implements QuestionSource.
func (s *templateQuestionSource) Generate(_ context.Context, plan QuestionPlan) ([]models.Question, error) {
	var questions []models.Question
	overlap := plan.Match.Matching
	gaps := plan.Match.Gaps

	// 2 technical questions seeded by the top overlapping skills
	if len(overlap) > 0 {
		questions = append(questions, models.Question{
			Text:        fmt.Sprintf("Explain your experience with %s and how you've used it in a production environment for %s responsibilities.", overlap[0], plan.JobTitle),
			TimeSeconds: 120,
			Category:    models.CategoryTechnical,
		})
		if len(overlap) > 1 {
			questions = append(questions, models.Question{
				Text:        fmt.Sprintf("How would you combine %s and %s to solve a complex problem in a %s role?", overlap[0], overlap[1], plan.JobTitle),
				TimeSeconds: 120,
				Category:    models.CategoryTechnical,
			})
		} else {
			questions = append(questions, models.Question{
				Text:        fmt.Sprintf("What are the best practices you follow when working with %s? Give specific examples.", overlap[0]),
				TimeSeconds: 120,
				Category:    models.CategoryTechnical,
			})
		}
	} else {
		questions = append(questions, models.Question{
			Text:        fmt.Sprintf("What technical skills do you bring to the %s position? Describe your strongest area of expertise.", plan.JobTitle),
			TimeSeconds: 120,
			Category:    models.CategoryTechnical,
		})
		questions = append(questions, models.Question{
			Text:        "Describe a technically challenging project you've worked on. What was your role and what technologies did you use?",
			TimeSeconds: 120,
			Category:    models.CategoryTechnical,
		})
	}

	// 1 gap assessment question
	if len(gaps) > 0 {
		questions = append(questions, models.Question{
			Text:        fmt.Sprintf("This role requires %s. While it's not on your resume, how would you approach learning and applying it?", gaps[0]),
			TimeSeconds: 120,
			Category:    models.CategoryGapAssessment,
		})
	} else {
		questions = append(questions, models.Question{
			Text:        fmt.Sprintf("How do you stay updated with new technologies and skills relevant to the %s role?", plan.JobTitle),
			TimeSeconds: 120,
			Category:    models.CategoryGapAssessment,
		})
	}

	// 1 system design question
	questions = append(questions, models.Question{
		Text:        fmt.Sprintf("How would you design a scalable system architecture for a key feature of a %s project? Walk us through your approach.", plan.JobTitle),
		TimeSeconds: 150,
		Category:    models.CategorySystemDesign,
	})

	// 1 communication / cultural fit question
	questions = append(questions, models.Question{
		Text:        "Describe a situation where you had to collaborate with cross-functional teams. How did you ensure effective communication and delivery?",
		TimeSeconds: 120,
		Category:    models.CategoryCommunication,
	})

	return questions, nil
}
