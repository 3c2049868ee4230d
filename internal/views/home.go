package views

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/domain"
	"github.com/aristath/moneyball/internal/session"
)

// Messages shown by the home page.
const (
	MsgLoadingMatches = "Loading matches..."
	MsgMatchesFailed  = "Failed to load matches"
	HomeSubtitle      = "Tap any match to see AI prediction"
)

// MatchLister is satisfied by backend.MatchesAPI.
type MatchLister interface {
	Upcoming(ctx context.Context) ([]domain.Match, error)
}

// MatchesCall performs the captured upcoming-matches request.
type MatchesCall func(ctx context.Context) ([]domain.Match, error)

// Home lists upcoming matches.
type Home struct {
	matches MatchLister
	store   session.Store
	loc     *time.Location
	log     zerolog.Logger

	started bool

	Username string
	Loading  bool
	Error    string
	Matches  []domain.Match
}

// NewHome creates the home page. Dates are rendered in loc (local time if nil).
func NewHome(matches MatchLister, store session.Store, loc *time.Location, log zerolog.Logger) *Home {
	return &Home{
		matches: matches,
		store:   store,
		loc:     location(loc),
		log:     log.With().Str("component", "home").Logger(),
	}
}

// Begin reads the greeting from the session and starts the one-time fetch.
// ok is false when the list was already requested.
func (h *Home) Begin(ctx context.Context) (call MatchesCall, ok bool) {
	if h.started {
		return nil, false
	}
	h.started = true
	h.Loading = true
	h.Error = ""

	if s, err := h.store.Load(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Failed to read session")
	} else {
		h.Username = s.Username
	}

	lister := h.matches
	return func(ctx context.Context) ([]domain.Match, error) {
		return lister.Upcoming(ctx)
	}, true
}

// Complete applies the outcome of a MatchesCall.
func (h *Home) Complete(matches []domain.Match, err error) {
	h.Loading = false
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load matches")
		h.Error = MsgMatchesFailed
		return
	}
	h.Matches = matches
}

// Load runs Begin, the call and Complete in one step.
func (h *Home) Load(ctx context.Context) error {
	call, ok := h.Begin(ctx)
	if !ok {
		return nil
	}
	matches, err := call(ctx)
	h.Complete(matches, err)
	if err != nil {
		return fmt.Errorf("load upcoming matches: %w", err)
	}
	return nil
}

// Greeting is the welcome line for the signed-in user.
func (h *Home) Greeting() string {
	return fmt.Sprintf("Welcome, %s!", h.Username)
}

// Cards returns one card per loaded match, in backend order.
func (h *Home) Cards() []Card {
	cards := make([]Card, 0, len(h.Matches))
	for _, m := range h.Matches {
		cards = append(cards, newCard(m, h.loc))
	}
	return cards
}

// Select navigates to the prediction page with the match at index i.
func (h *Home) Select(i int) (Navigation, bool) {
	if i < 0 || i >= len(h.Matches) {
		return Navigation{}, false
	}
	return ToPrediction(h.Matches[i]), true
}

// SelectID navigates to the prediction page with the match whose id is id.
func (h *Home) SelectID(id int64) (Navigation, bool) {
	for i := range h.Matches {
		if h.Matches[i].ID == id {
			return h.Select(i)
		}
	}
	return Navigation{}, false
}

// Logout clears the session and returns to the login page. A store failure is
// logged; navigation happens regardless.
func (h *Home) Logout(ctx context.Context) Navigation {
	return Logout(ctx, h.store, h.log)
}

// Logout clears every session field and navigates to the login page.
func Logout(ctx context.Context, store session.Store, log zerolog.Logger) Navigation {
	if err := store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
	}
	return ToLogin()
}
