package services

import (
	"fmt"
	"strings"

	"farhanmaulana/hire-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the prompt for AI question generation. The
// recentQuestions block carries previously asked questions retrieved from the
// question archive; it is empty when the archive is disabled or unreachable.
func (pb *PromptBuilder) BuildQuestionPrompt(
	jobTitle, jobDescription string,
	level models.ExperienceLevel,
	jobSkills, resumeSkills []string,
	match SkillMatch,
	recentQuestions []string,
) string {
	var recent string
	if len(recentQuestions) > 0 {
		recent = fmt.Sprintf("\nRecently asked questions for similar roles (do NOT repeat these):\n- %s\n",
			strings.Join(recentQuestions, "\n- "))
	}

	return fmt.Sprintf(`You are an AI interviewer. Generate exactly 5 interview questions for a "%s" position (%s level).

Job Description: %s
Job Required Skills: %s
Candidate's Resume Skills: %s
Matching Skills: %s
Skills Gaps: %s
%s
Rules:
- 2 questions should test the candidate's matching skills (%s)
- 1 question should assess their ability in gap areas (%s)
- 1 question should be about system design or problem-solving related to the role
- 1 question should assess communication, teamwork, or cultural fit

Return ONLY a JSON array of objects with keys: "q" (question text), "time" (seconds, 90-180), "category" (one of: "technical", "problem_solving", "system_design", "communication", "gap_assessment").
No markdown, no explanation, just the JSON array.`,
		jobTitle, level, jobDescription,
		strings.Join(jobSkills, ", "),
		strings.Join(resumeSkills, ", "),
		strings.Join(match.Matching, ", "),
		strings.Join(match.Gaps, ", "),
		recent,
		joinOrDefault(match.Matching, "general technical skills"),
		joinOrDefault(match.Gaps, "broader knowledge"),
	)
}

// BuildAnswerScoringPrompt creates one prompt covering every question/answer
// pair; the model is asked for a JSON array aligned by index.
func (pb *PromptBuilder) BuildAnswerScoringPrompt(jobSkills []string, questions []models.Question, answers []string) string {
	var pairs []string
	for i, q := range questions {
		answer := "(no answer)"
		if i < len(answers) && answers[i] != "" {
			answer = answers[i]
		}
		pairs = append(pairs, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, q.Text, i+1, answer))
	}

	return fmt.Sprintf(`You are an AI interview evaluator for a "%s" role.

Score each answer from 0-100 based on:
- Relevance to the question (40%%)
- Technical accuracy (30%%)
- Completeness and depth (20%%)
- Communication clarity (10%%)

Questions and Answers:
%s

Return ONLY a JSON array of objects with keys: "score" (number 0-100), "feedback" (one sentence).
No markdown, no explanation.`,
		joinOrDefault(jobSkills, "technical"),
		strings.Join(pairs, "\n\n"),
	)
}

// BuildArchiveQuery creates the retrieval query for the question archive.
func (pb *PromptBuilder) BuildArchiveQuery(jobTitle string, jobSkills []string) string {
	return fmt.Sprintf("Interview questions for a %s role covering %s",
		jobTitle, joinOrDefault(jobSkills, "general software engineering"))
}

func joinOrDefault(items []string, defaultValue string) string {
	if len(items) == 0 {
		return defaultValue
	}
	return strings.Join(items, ", ")
}

// extractJSONArray pulls the first bracket-delimited JSON array out of text
// that might contain markdown fences or other formatting around it.
func extractJSONArray(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}

	return text[start : end+1], true
}
