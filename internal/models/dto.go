package models

type GenerateQuestionsRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
}

type GenerateQuestionsResponse struct {
	InterviewID string     `json:"interview_id"`
	Questions   []Question `json:"questions"`
}

type CalculateScoresRequest struct {
	InterviewID string   `json:"interview_id" validate:"required"`
	Answers     []string `json:"answers"`
}

type CalculateScoresResponse struct {
	ScoreID        string        `json:"score_id"`
	ResumeScore    int           `json:"resume_score"`
	InterviewScore int           `json:"interview_score"`
	TotalScore     int           `json:"total_score"`
	Status         ScoreStatus   `json:"status"`
	Feedback       ScoreFeedback `json:"feedback"`
}
