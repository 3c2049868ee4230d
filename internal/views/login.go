package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/domain"
	"github.com/aristath/moneyball/internal/session"
)

// Mode selects between signing in and creating an account.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// ParseMode returns ModeSignup for "signup" and ModeLogin otherwise.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, string(ModeSignup)) {
		return ModeSignup
	}
	return ModeLogin
}

// Messages shown by the login page.
const (
	MsgAuthFailed         = "Authentication failed"
	MsgMissingCredentials = "Username and password are required"
	DemoHint              = "Demo: Use any username/password to create an account"
	loadingLabel          = "Loading..."
)

// Authenticator is satisfied by backend.AuthAPI.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.AuthResponse, error)
	Signup(ctx context.Context, username, password string, role domain.Role) (*domain.AuthResponse, error)
}

// AuthCall performs the captured authentication request.
type AuthCall func(ctx context.Context) (*domain.AuthResponse, error)

// Login is the authentication page.
type Login struct {
	auth  Authenticator
	store session.Store
	log   zerolog.Logger

	Mode     Mode
	Username string
	Password string
	Pending  bool
	Error    string
}

// NewLogin creates the login page in login mode.
func NewLogin(auth Authenticator, store session.Store, log zerolog.Logger) *Login {
	return &Login{
		auth:  auth,
		store: store,
		log:   log.With().Str("component", "login").Logger(),
		Mode:  ModeLogin,
	}
}

// SetMode switches between login and signup.
func (l *Login) SetMode(m Mode) {
	l.Mode = m
	l.Error = ""
}

// ToggleMode flips between login and signup.
func (l *Login) ToggleMode() {
	if l.Mode == ModeSignup {
		l.SetMode(ModeLogin)
		return
	}
	l.SetMode(ModeSignup)
}

// Title is the label of the active mode.
func (l *Login) Title() string {
	if l.Mode == ModeSignup {
		return "Sign Up"
	}
	return "Login"
}

// SubmitLabel is the text of the submit control.
func (l *Login) SubmitLabel() string {
	if l.Pending {
		return loadingLabel
	}
	return l.Title()
}

// Begin validates the form and marks the page pending. The returned call
// must be handed back to Complete together with its result.
func (l *Login) Begin() (AuthCall, error) {
	if l.Pending {
		return nil, ErrLoginPending
	}
	if l.Username == "" || l.Password == "" {
		l.Error = MsgMissingCredentials
		return nil, ErrMissingCredentials
	}

	l.Pending = true
	l.Error = ""

	auth, mode, username, password := l.auth, l.Mode, l.Username, l.Password
	return func(ctx context.Context) (*domain.AuthResponse, error) {
		if mode == ModeSignup {
			return auth.Signup(ctx, username, password, domain.RoleGuest)
		}
		return auth.Login(ctx, username, password)
	}, nil
}

// Complete applies the outcome of an AuthCall. On success the session holds
// exactly the returned token, username and role and the user goes Home.
func (l *Login) Complete(ctx context.Context, resp *domain.AuthResponse, err error) Navigation {
	l.Pending = false

	if err == nil && resp == nil {
		err = errors.New("empty authentication response")
	}
	if err != nil {
		l.log.Warn().Err(err).Str("mode", string(l.Mode)).Msg("Authentication failed")
		l.Error = authMessage(err)
		return Navigation{}
	}

	if err := l.store.Save(ctx, session.FromAuth(*resp)); err != nil {
		l.log.Error().Err(err).Msg("Failed to persist session")
		l.Error = MsgAuthFailed
		return Navigation{}
	}

	l.Password = ""
	l.log.Info().Str("username", resp.Username).Str("role", string(resp.Role)).Msg("Signed in")
	return ToHome()
}

// Submit runs Begin, the call and Complete in one step.
func (l *Login) Submit(ctx context.Context) (Navigation, error) {
	call, err := l.Begin()
	if err != nil {
		return Navigation{}, err
	}
	resp, err := call(ctx)
	nav := l.Complete(ctx, resp, err)
	if err != nil {
		return nav, fmt.Errorf("authenticate: %w", err)
	}
	return nav, nil
}

func authMessage(err error) string {
	if msg := backend.MessageOf(err); msg != "" {
		return msg
	}
	return MsgAuthFailed
}
