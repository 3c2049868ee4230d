package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/domain"
)

// Messages and labels shown by the prediction page.
const (
	MsgNoMatch          = "No match selected"
	MsgPredictionFailed = "Failed to generate prediction"
	ToggleLabel         = "Include AI Analysis (slower)"
	predictingLabel     = "Predicting..."
	predictLabel        = "Generate Prediction"
)

// Predictor is satisfied by backend.PredictionsAPI.
type Predictor interface {
	Predict(ctx context.Context, homeTeamID, awayTeamID int64, includeAIAnalysis bool) (*domain.Prediction, error)
}

// PredictCall performs the captured prediction request.
type PredictCall func(ctx context.Context) (*domain.Prediction, error)

// Prediction shows the outcome distribution for one match.
type Prediction struct {
	predictor Predictor
	loc       *time.Location
	log       zerolog.Logger

	Match     *domain.Match
	IncludeAI bool
	Pending   bool
	Result    *domain.Prediction
	Error     string
}

// NewPrediction creates the page for the match carried by nav. A nil match
// yields the fallback page.
func NewPrediction(predictor Predictor, nav Navigation, loc *time.Location, log zerolog.Logger) *Prediction {
	return &Prediction{
		predictor: predictor,
		loc:       location(loc),
		log:       log.With().Str("component", "prediction").Logger(),
		Match:     nav.Match,
	}
}

// HasMatch is false when the page must render the fallback.
func (p *Prediction) HasMatch() bool {
	return p.Match != nil
}

// Back returns to the match list.
func (p *Prediction) Back() Navigation {
	return ToHome()
}

// Kickoff is the full local date and time of the match.
func (p *Prediction) Kickoff() string {
	if p.Match == nil {
		return ""
	}
	return formatDate(*p.Match, p.loc, kickoffLayout)
}

// TriggerLabel is the text of the predict control.
func (p *Prediction) TriggerLabel() string {
	if p.Pending {
		return predictingLabel
	}
	return predictLabel
}

// ToggleAI flips the AI analysis option.
func (p *Prediction) ToggleAI() {
	p.IncludeAI = !p.IncludeAI
}

// Begin marks the page pending and captures the request for both team ids.
// Triggers while pending or without a match are rejected.
func (p *Prediction) Begin() (PredictCall, error) {
	if p.Match == nil {
		return nil, ErrNoMatch
	}
	if p.Pending {
		return nil, ErrPredictionPending
	}

	p.Pending = true
	p.Error = ""

	predictor := p.predictor
	home, away, includeAI := p.Match.HomeTeam.ID, p.Match.AwayTeam.ID, p.IncludeAI
	return func(ctx context.Context) (*domain.Prediction, error) {
		return predictor.Predict(ctx, home, away, includeAI)
	}, nil
}

// Complete applies the outcome of a PredictCall. Payloads failing validation
// are treated as a failed prediction.
func (p *Prediction) Complete(result *domain.Prediction, err error) error {
	p.Pending = false

	if err == nil && result == nil {
		err = errors.New("empty prediction response")
	}
	if err == nil {
		err = result.Validate()
	}
	if err != nil {
		p.log.Error().Err(err).Int64("match_id", p.Match.ID).Msg("Failed to generate prediction")
		p.Error = MsgPredictionFailed
		return err
	}

	p.Result = result
	return nil
}

// Predict runs Begin, the call and Complete in one step.
func (p *Prediction) Predict(ctx context.Context) error {
	call, err := p.Begin()
	if err != nil {
		return err
	}
	if err := p.Complete(call(ctx)); err != nil {
		return fmt.Errorf("predict match %d: %w", p.Match.ID, err)
	}
	return nil
}

// Restart discards the result. IncludeAI keeps its value.
func (p *Prediction) Restart() {
	p.Result = nil
	p.Error = ""
}

// Bars returns the home win, draw and away win bars of the current result.
func (p *Prediction) Bars() []Bar {
	if p.Result == nil || p.Match == nil {
		return nil
	}
	return []Bar{
		newBar(p.Match.HomeTeam.Name+" Win", p.Result.HomeWinProbability, "home-fill"),
		newBar("Draw", p.Result.DrawProbability, "draw-fill"),
		newBar(p.Match.AwayTeam.Name+" Win", p.Result.AwayWinProbability, "away-fill"),
	}
}

// ExpectedScore is the predicted expected-goals line.
func (p *Prediction) ExpectedScore() string {
	if p.Result == nil {
		return ""
	}
	return FormatScore(p.Result.PredictedHomeXg, p.Result.PredictedAwayXg)
}

// Confidence returns the badge label and its display class.
func (p *Prediction) Confidence() (label, class string) {
	if p.Result == nil {
		return "", ""
	}
	return string(p.Result.Confidence), p.Result.Confidence.BadgeClass()
}

// Analysis is the optional narrative; empty when absent.
func (p *Prediction) Analysis() string {
	if p.Result == nil {
		return ""
	}
	return p.Result.AIAnalysis
}
