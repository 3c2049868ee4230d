package testing

import (
	"fmt"

	"github.com/aristath/moneyball/internal/domain"
)

// SampleMatch is an upcoming fixture with distinct records for both sides.
func SampleMatch() domain.Match {
	return domain.Match{
		ID:        42,
		MatchDate: "2025-10-18T15:00:00",
		HomeTeam:  domain.Team{ID: 10, Name: "Arsenal", Wins: 5, Draws: 1, Losses: 0},
		AwayTeam:  domain.Team{ID: 11, Name: "Chelsea", Wins: 3, Draws: 2, Losses: 1},
	}
}

// SampleMatches returns n fixtures with increasing ids and kickoff days.
func SampleMatches(n int) []domain.Match {
	matches := make([]domain.Match, 0, n)
	for i := 0; i < n; i++ {
		m := SampleMatch()
		m.ID = int64(100 + i)
		m.MatchDate = fmt.Sprintf("2025-10-%02dT15:00:00", 18+i%10)
		m.HomeTeam.Wins = i
		matches = append(matches, m)
	}
	return matches
}

// SamplePrediction is a valid distribution of 0.55 / 0.25 / 0.20.
func SamplePrediction() *domain.Prediction {
	return &domain.Prediction{
		HomeWinProbability: 0.55,
		DrawProbability:    0.25,
		AwayWinProbability: 0.20,
		PredictedHomeXg:    1.45,
		PredictedAwayXg:    0.98,
		Confidence:         domain.ConfidenceHigh,
	}
}
