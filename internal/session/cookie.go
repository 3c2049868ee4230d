package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/aristath/moneyball/internal/domain"
)

const (
	cookieName  = "moneyball_session"
	keyClientID = "client_id"
)

// CookieOptions configures the browser session cookie.
type CookieOptions struct {
	Secret []byte
	Secure bool
	MaxAge int // seconds; 0 keeps the cookie for the browser session only
}

// CookieStore keeps the session in a signed browser cookie, the server-side
// counterpart of browser local storage.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore creates a cookie-backed store factory.
func NewCookieStore(opts CookieOptions) *CookieStore {
	store := sessions.NewCookieStore(opts.Secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store}
}

// Bind returns the Store of the browser that sent r.
func (c *CookieStore) Bind(w http.ResponseWriter, r *http.Request) *RequestStore {
	return &RequestStore{parent: c, w: w, r: r}
}

// RequestStore is a CookieStore bound to a single request/response pair.
type RequestStore struct {
	parent *CookieStore
	w      http.ResponseWriter
	r      *http.Request
}

func (s *RequestStore) get() *sessions.Session {
	// An undecodable cookie (rotated secret, tampering) yields a fresh,
	// logged-out session.
	sess, _ := s.parent.store.Get(s.r, cookieName)
	return sess
}

func (s *RequestStore) Load(ctx context.Context) (Session, error) {
	sess := s.get()
	return Session{
		Token:    stringValue(sess, KeyToken),
		Username: stringValue(sess, KeyUsername),
		Role:     roleValue(sess),
	}, nil
}

func (s *RequestStore) Save(ctx context.Context, v Session) error {
	sess := s.get()
	sess.Values[KeyToken] = v.Token
	sess.Values[KeyUsername] = v.Username
	sess.Values[KeyRole] = string(v.Role)
	return sess.Save(s.r, s.w)
}

// Clear drops every value and expires the cookie.
func (s *RequestStore) Clear(ctx context.Context) error {
	sess := s.get()
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	opts := *s.parent.store.Options
	opts.MaxAge = -1
	sess.Options = &opts
	return sess.Save(s.r, s.w)
}

// ClientID returns a stable identifier for this browser, minting one on
// first use. It keys per-browser bookkeeping such as in-flight requests.
func (s *RequestStore) ClientID() (string, error) {
	sess := s.get()
	if id := stringValue(sess, keyClientID); id != "" {
		return id, nil
	}
	id := uuid.New().String()
	sess.Values[keyClientID] = id
	if err := sess.Save(s.r, s.w); err != nil {
		return "", err
	}
	return id, nil
}

func stringValue(sess *sessions.Session, key string) string {
	v, _ := sess.Values[key].(string)
	return v
}

func roleValue(sess *sessions.Session) domain.Role {
	return domain.Role(stringValue(sess, KeyRole))
}
