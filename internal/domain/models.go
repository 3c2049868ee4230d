// Package domain provides the view models exchanged with the prediction backend.
package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"
)

// Role is the account role reported by the backend
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Confidence is the backend's confidence label for a prediction
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// ProbabilityTolerance is how far the outcome probabilities may drift from 1.
const ProbabilityTolerance = 0.02

// ErrInvalidPrediction is returned when a prediction payload cannot be displayed.
var ErrInvalidPrediction = errors.New("invalid prediction")

// Team is a club with its historical record
type Team struct {
	ID     int64  `json:"id" msgpack:"id"`
	Name   string `json:"name" msgpack:"name"`
	Wins   int    `json:"wins" msgpack:"wins"`
	Draws  int    `json:"draws" msgpack:"draws"`
	Losses int    `json:"losses" msgpack:"losses"`
}

// Record renders the win/draw/loss counts, e.g. "3W 1D 2L".
func (t Team) Record() string {
	return fmt.Sprintf("%dW %dD %dL", t.Wins, t.Draws, t.Losses)
}

// Match is a scheduled fixture between two teams
type Match struct {
	ID        int64  `json:"id" msgpack:"id"`
	MatchDate string `json:"matchDate" msgpack:"matchDate"`
	HomeTeam  Team   `json:"homeTeam" msgpack:"homeTeam"`
	AwayTeam  Team   `json:"awayTeam" msgpack:"awayTeam"`
}

// kickoffLayouts are the timestamp shapes the backend has been seen to emit.
// Zone-less values are local date-times.
var kickoffLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Kickoff parses MatchDate. Zone-less timestamps are interpreted in loc.
func (m Match) Kickoff(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.ParseInLocation(layout, m.MatchDate, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised match date %q", m.MatchDate)
}

// Prediction is the backend-computed outcome distribution for a fixture
type Prediction struct {
	HomeWinProbability float64    `json:"homeWinProbability"`
	DrawProbability    float64    `json:"drawProbability"`
	AwayWinProbability float64    `json:"awayWinProbability"`
	PredictedHomeXg    float64    `json:"predictedHomeXg"`
	PredictedAwayXg    float64    `json:"predictedAwayXg"`
	Confidence         Confidence `json:"confidence"`
	AIAnalysis         string     `json:"aiAnalysis,omitempty"`
}

// Probabilities returns home win, draw and away win in display order.
func (p Prediction) Probabilities() []float64 {
	return []float64{p.HomeWinProbability, p.DrawProbability, p.AwayWinProbability}
}

// Validate checks the probability and expected-goals contract the views rely on.
func (p Prediction) Validate() error {
	probs := p.Probabilities()
	for _, v := range probs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite probability", ErrInvalidPrediction)
		}
	}
	if floats.Min(probs) < 0 || floats.Max(probs) > 1 {
		return fmt.Errorf("%w: probability outside [0,1]", ErrInvalidPrediction)
	}
	if sum := floats.Sum(probs); math.Abs(sum-1) > ProbabilityTolerance {
		return fmt.Errorf("%w: probabilities sum to %.3f", ErrInvalidPrediction, sum)
	}
	if p.PredictedHomeXg < 0 || p.PredictedAwayXg < 0 {
		return fmt.Errorf("%w: negative expected goals", ErrInvalidPrediction)
	}
	return nil
}

// BadgeClass is the display class for the confidence label.
func (c Confidence) BadgeClass() string {
	return cases.Lower(language.English).String(string(c))
}

// Credentials are the fields sent to the auth endpoints
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
}

// PredictionRequest is the body of a predict call
type PredictionRequest struct {
	HomeTeamID        int64 `json:"homeTeamId"`
	AwayTeamID        int64 `json:"awayTeamId"`
	IncludeAIAnalysis bool  `json:"includeAiAnalysis"`
}
