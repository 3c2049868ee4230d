package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/moneyball/internal/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// roundTrip replays the cookies set on rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieStore_SaveThenLoad(t *testing.T) {
	store := NewCookieStore(CookieOptions{Secret: testSecret})
	ctx := context.Background()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	want := Session{Token: "jwt", Username: "dave", Role: domain.RoleGuest}
	require.NoError(t, store.Bind(rec, req).Save(ctx, want))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	got, err := store.Bind(httptest.NewRecorder(), roundTrip(rec)).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCookieStore_LoadWithoutCookie(t *testing.T) {
	store := NewCookieStore(CookieOptions{Secret: testSecret})

	got, err := store.Bind(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestCookieStore_TamperedCookieIsLoggedOut(t *testing.T) {
	store := NewCookieStore(CookieOptions{Secret: testSecret})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})

	got, err := store.Bind(httptest.NewRecorder(), req).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestCookieStore_ClearExpiresCookie(t *testing.T) {
	store := NewCookieStore(CookieOptions{Secret: testSecret, MaxAge: 3600})
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Bind(rec, httptest.NewRequest(http.MethodPost, "/login", nil)).
		Save(ctx, Session{Token: "jwt", Username: "erin"}))

	clearRec := httptest.NewRecorder()
	require.NoError(t, store.Bind(clearRec, roundTrip(rec)).Clear(ctx))

	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)

	// The shared options must not be mutated by Clear.
	assert.Equal(t, 3600, store.store.Options.MaxAge)
}

func TestCookieStore_ClientIDIsStable(t *testing.T) {
	store := NewCookieStore(CookieOptions{Secret: testSecret})

	rec := httptest.NewRecorder()
	id, err := store.Bind(rec, httptest.NewRequest(http.MethodGet, "/", nil)).ClientID()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	again, err := store.Bind(httptest.NewRecorder(), roundTrip(rec)).ClientID()
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
