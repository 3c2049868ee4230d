package views

import (
	"fmt"
	"math"
	"time"

	"github.com/aristath/moneyball/internal/domain"
)

const (
	cardDateLayout = "Mon, Jan 2, 03:04 PM"
	kickoffLayout  = "1/2/2006, 3:04:05 PM"
)

// Card is the display model of one upcoming match.
type Card struct {
	Match      domain.Match
	Date       string
	HomeName   string
	HomeRecord string
	AwayName   string
	AwayRecord string
}

// Bar is one outcome probability bar.
type Bar struct {
	Label string
	Value string  // one decimal place, e.g. "55.0%"
	Width float64 // percent of the track, clamped to [0,100]
	Class string
}

func newCard(m domain.Match, loc *time.Location) Card {
	return Card{
		Match:      m,
		Date:       formatDate(m, loc, cardDateLayout),
		HomeName:   m.HomeTeam.Name,
		HomeRecord: m.HomeTeam.Record(),
		AwayName:   m.AwayTeam.Name,
		AwayRecord: m.AwayTeam.Record(),
	}
}

// formatDate falls back to the raw backend value when it cannot be parsed.
func formatDate(m domain.Match, loc *time.Location, layout string) string {
	t, err := m.Kickoff(loc)
	if err != nil {
		return m.MatchDate
	}
	return t.Format(layout)
}

func newBar(label string, probability float64, class string) Bar {
	return Bar{
		Label: label,
		Value: FormatPercent(probability),
		Width: BarWidth(probability),
		Class: class,
	}
}

// FormatPercent renders a probability in [0,1] as a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// BarWidth converts a probability to a bar width in percent.
func BarWidth(p float64) float64 {
	w := p * 100
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	return math.Min(w, 100)
}

// FormatScore renders expected goals as "1.45 - 0.98".
func FormatScore(home, away float64) string {
	return fmt.Sprintf("%.2f - %.2f", home, away)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
