package services

import (
	"math"
	"strings"

	"farhanmaulana/hire-screener/internal/models"
)

// Score component ceilings: 60 for skills, 20 for experience, 20 for
// profile completeness.
const defaultSkillComponent = 30

// experienceBands maps a job's experience level to the year markers and
// keywords looked for in the candidate's free-text experience field. "lead"
// has no band, so it scores through the generic non-empty/default path.
var experienceBands = map[models.ExperienceLevel][]string{
	models.LevelJunior: {"1", "2", "entry"},
	models.LevelMid:    {"3", "4", "5"},
	models.LevelSenior: {"5", "6", "7", "8", "10"},
}

// ScoreResume turns the skill overlap, the experience text, and the profile
// completeness into a 0-100 integer. Pure function, no error paths.
func ScoreResume(match SkillMatch, jobSkills []string, level models.ExperienceLevel, profile *models.Profile) int {
	skillScore := float64(defaultSkillComponent)
	if len(jobSkills) > 0 {
		skillScore = float64(len(match.Matching)) / float64(len(jobSkills)) * 60
	}

	experienceScore := 10
	experience := profile.Experience
	if band, ok := experienceBands[level]; ok && containsAny(experience, band) {
		experienceScore = 20
	} else if len(experience) > 0 {
		experienceScore = 15
	}

	profileScore := 0
	if len(profile.Name) > 0 {
		profileScore += 5
	}
	if len(profile.Email) > 0 {
		profileScore += 5
	}
	if len(profile.Title) > 0 {
		profileScore += 5
	}
	if len(profile.ResumeSkills) > 0 {
		profileScore += 5
	}

	total := int(math.Round(skillScore + float64(experienceScore+profileScore)))
	if total > 100 {
		total = 100
	}
	return total
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
