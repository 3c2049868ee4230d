// Package views implements the Login, Home and Prediction pages as plain state
// machines. They talk to the backend through small interfaces, persist identity
// through a session.Store and return Navigation values; rendering is left to
// the web and terminal frontends.
package views

import (
	"errors"

	"github.com/aristath/moneyball/internal/domain"
)

// Route names a page.
type Route string

const (
	RouteNone       Route = ""
	RouteLogin      Route = "login"
	RouteHome       Route = "home"
	RoutePrediction Route = "prediction"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrNoMatch is returned when the prediction page was reached without a match.
	ErrNoMatch = errors.New("no match selected")
	// ErrPredictionPending is returned while a prediction request is outstanding.
	ErrPredictionPending = errors.New("prediction already in progress")
	// ErrLoginPending is returned while an authentication request is outstanding.
	ErrLoginPending = errors.New("authentication already in progress")
)

// Navigation is the result of a user action. A zero Navigation means stay on
// the current page. Match is only set for RoutePrediction and is passed along
// as-is, never refetched.
type Navigation struct {
	Route Route
	Match *domain.Match
}

// Changed reports whether the action leaves the current page.
func (n Navigation) Changed() bool {
	return n.Route != RouteNone
}

// ToLogin navigates to the login page.
func ToLogin() Navigation {
	return Navigation{Route: RouteLogin}
}

// ToHome navigates to the match list.
func ToHome() Navigation {
	return Navigation{Route: RouteHome}
}

// ToPrediction navigates to the prediction page carrying a copy of match.
func ToPrediction(match domain.Match) Navigation {
	return Navigation{Route: RoutePrediction, Match: &match}
}
