package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aristath/moneyball/internal/domain"
)

// AuthAPI groups the authentication calls
type AuthAPI struct{ c *Client }

// Signup creates an account. An empty role registers a guest.
func (a *AuthAPI) Signup(ctx context.Context, username, password string, role domain.Role) (*domain.AuthResponse, error) {
	if role == "" {
		role = domain.RoleGuest
	}
	var resp domain.AuthResponse
	body := domain.Credentials{Username: username, Password: password, Role: role}
	if err := a.c.do(ctx, http.MethodPost, "/auth/signup", "/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	body := domain.Credentials{Username: username, Password: password}
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchesAPI groups the match listing calls
type MatchesAPI struct{ c *Client }

// Upcoming lists scheduled fixtures
func (m *MatchesAPI) Upcoming(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	if err := m.c.do(ctx, http.MethodGet, "/matches/upcoming", "/matches/upcoming", nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// ByID fetches a single fixture
func (m *MatchesAPI) ByID(ctx context.Context, id int64) (*domain.Match, error) {
	var match domain.Match
	path := fmt.Sprintf("/matches/%d", id)
	if err := m.c.do(ctx, http.MethodGet, "/matches/{id}", path, nil, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// TeamsAPI groups the team listing calls
type TeamsAPI struct{ c *Client }

// All lists every team
func (t *TeamsAPI) All(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := t.c.do(ctx, http.MethodGet, "/teams", "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// PredictionsAPI groups the prediction calls
type PredictionsAPI struct{ c *Client }

// Predict asks the backend for an outcome distribution. includeAIAnalysis
// requests the optional narrative, which is noticeably slower.
func (p *PredictionsAPI) Predict(ctx context.Context, homeTeamID, awayTeamID int64, includeAIAnalysis bool) (*domain.Prediction, error) {
	var prediction domain.Prediction
	body := domain.PredictionRequest{
		HomeTeamID:        homeTeamID,
		AwayTeamID:        awayTeamID,
		IncludeAIAnalysis: includeAIAnalysis,
	}
	if err := p.c.do(ctx, http.MethodPost, "/predictions/predict", "/predictions/predict", body, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}
