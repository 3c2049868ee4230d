// Package tui is the terminal frontend. It drives the same page views as the
// web frontend and persists the session in the local SQLite database.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/domain"
	"github.com/aristath/moneyball/internal/session"
	"github.com/aristath/moneyball/internal/tui/theme"
	"github.com/aristath/moneyball/internal/views"
)

type screen int

const (
	screenLogin screen = iota
	screenHome
	screenPrediction
)

// Deps are the backend groups and session store the model drives.
type Deps struct {
	Auth      views.Authenticator
	Matches   views.MatchLister
	Predictor views.Predictor
	Store     session.Store
	Log       zerolog.Logger
	Location  *time.Location
	APIURL    string
}

// DepsFromClient wires every backend group of c.
func DepsFromClient(c *backend.Client, store session.Store, log zerolog.Logger) Deps {
	return Deps{
		Auth:      c.Auth,
		Matches:   c.Matches,
		Predictor: c.Predictions,
		Store:     store,
		Log:       log,
		APIURL:    c.BaseURL(),
	}
}

type Model struct {
	deps Deps
	ctx  context.Context
	log  zerolog.Logger

	screen     screen
	login      *views.Login
	home       *views.Home
	prediction *views.Prediction

	// Components
	username textinput.Model
	password textinput.Model
	spinner  spinner.Model

	// UI state
	cursor int
	width  int
	height int
}

// Messages

// Each reply carries the view that issued the request. Update drops replies
// whose view is no longer mounted.

type authMsg struct {
	view *views.Login
	resp *domain.AuthResponse
	err  error
}

type matchesMsg struct {
	view    *views.Home
	matches []domain.Match
	err     error
}

type predictionMsg struct {
	view       *views.Prediction
	prediction *domain.Prediction
	err        error
}

// NewModel opens on Home when the stored session carries a token, otherwise
// on Login.
func NewModel(ctx context.Context, deps Deps) Model {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(theme.Default.Accent)

	m := Model{
		deps:     deps,
		ctx:      ctx,
		log:      deps.Log.With().Str("component", "tui").Logger(),
		username: username,
		password: password,
		spinner:  sp,
	}

	sess, err := deps.Store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Failed to read stored session")
	}
	if sess.Authenticated() {
		m.screen = screenHome
		m.home = views.NewHome(deps.Matches, deps.Store, deps.Location, deps.Log)
	} else {
		m.toLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.screen == screenHome {
		cmds = append(cmds, m.beginHome())
	}
	return tea.Batch(cmds...)
}

// Commands

func fetchAuth(ctx context.Context, view *views.Login, call views.AuthCall) tea.Cmd {
	return func() tea.Msg {
		resp, err := call(ctx)
		return authMsg{view, resp, err}
	}
}

func fetchMatches(ctx context.Context, view *views.Home, call views.MatchesCall) tea.Cmd {
	return func() tea.Msg {
		matches, err := call(ctx)
		return matchesMsg{view, matches, err}
	}
}

func fetchPrediction(ctx context.Context, view *views.Prediction, call views.PredictCall) tea.Cmd {
	return func() tea.Msg {
		p, err := call(ctx)
		return predictionMsg{view, p, err}
	}
}

// beginHome starts the one-time match fetch of the home view.
func (m *Model) beginHome() tea.Cmd {
	call, ok := m.home.Begin(m.ctx)
	if !ok {
		return nil
	}
	return fetchMatches(m.ctx, m.home, call)
}

func (m *Model) toLogin() {
	m.screen = screenLogin
	m.login = views.NewLogin(m.deps.Auth, m.deps.Store, m.deps.Log)
	m.home = nil
	m.prediction = nil
	m.username.Reset()
	m.password.Reset()
	m.password.Blur()
	m.username.Focus()
}

// navigate applies a view navigation and returns the command it needs.
func (m *Model) navigate(nav views.Navigation) tea.Cmd {
	switch nav.Route {
	case views.RouteLogin:
		m.toLogin()
	case views.RouteHome:
		// Every visit mounts a fresh list, like reopening the page.
		m.screen = screenHome
		m.prediction = nil
		m.home = views.NewHome(m.deps.Matches, m.deps.Store, m.deps.Location, m.deps.Log)
		m.cursor = 0
		return m.beginHome()
	case views.RoutePrediction:
		m.screen = screenPrediction
		m.prediction = views.NewPrediction(m.deps.Predictor, nav, m.deps.Location, m.deps.Log)
	}
	return nil
}
