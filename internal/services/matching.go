package services

import (
	"math"
	"strings"
)

// SkillMatch is the overlap between a candidate's resume skills and a job's
// required skills. Matching entries keep the candidate's casing, gap entries
// keep the job's casing.
type SkillMatch struct {
	Matching        []string
	Gaps            []string
	MatchPercentage int
}

// MatchSkills compares the two lists with case-insensitive exact matching.
// No fuzzy matching or stemming. Total function, never errors.
func MatchSkills(resumeSkills, jobSkills []string) SkillMatch {
	jobSet := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		jobSet[strings.ToLower(s)] = true
	}

	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = true
	}

	var matching []string
	for _, s := range resumeSkills {
		if jobSet[strings.ToLower(s)] {
			matching = append(matching, s)
		}
	}

	var gaps []string
	for _, s := range jobSkills {
		if !resumeSet[strings.ToLower(s)] {
			gaps = append(gaps, s)
		}
	}

	percentage := 0
	if len(jobSkills) > 0 {
		percentage = int(math.Round(float64(len(matching)) / float64(len(jobSkills)) * 100))
	}

	return SkillMatch{
		Matching:        matching,
		Gaps:            gaps,
		MatchPercentage: percentage,
	}
}
