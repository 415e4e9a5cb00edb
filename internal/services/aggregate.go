package services

import (
	"math"

	"farhanmaulana/hire-screener/internal/models"
)

// TotalScore combines the two component scores using the configured weights.
// The sum is divided by 100 regardless of whether the weights add up to 100;
// operators own that invariant through system settings.
func TotalScore(resumeScore, interviewScore int, weights models.ScoreWeights) int {
	return int(math.Round(float64(resumeScore*weights.Resume+interviewScore*weights.Interview) / 100))
}

// DecideStatus maps a total score to a hiring recommendation.
// First match wins: >=75 passed, <50 needs improvement, otherwise review.
func DecideStatus(totalScore int) models.ScoreStatus {
	switch {
	case totalScore >= 75:
		return models.ScorePassed
	case totalScore < 50:
		return models.ScoreNeedsImprovement
	default:
		return models.ScoreUnderReview
	}
}

// ApplicationStatusFor projects a hiring recommendation onto the owning
// application's status.
func ApplicationStatusFor(status models.ScoreStatus) models.ApplicationStatus {
	switch status {
	case models.ScorePassed:
		return models.ApplicationShortlisted
	case models.ScoreNeedsImprovement:
		return models.ApplicationRejected
	default:
		return models.ApplicationReview
	}
}
