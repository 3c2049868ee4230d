package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/session"
	"github.com/aristath/moneyball/internal/views"
)

type loginPage struct {
	View *views.Login
	Hint string
}

type cardLink struct {
	views.Card
	Href string
}

type homePage struct {
	View     *views.Home
	Greeting string
	Subtitle string
	Loading  string
	Cards    []cardLink
}

type predictionPage struct {
	View            *views.Prediction
	Action          string
	State           string
	ToggleLabel     string
	Bars            []views.Bar
	Score           string
	ConfidenceLabel string
	ConfidenceClass string
	Analysis        string
}

type fallbackPage struct {
	Message string
}

// navigationURL maps a view navigation onto a page address.
func (s *Server) navigationURL(nav views.Navigation) string {
	switch nav.Route {
	case views.RouteHome:
		return "/"
	case views.RoutePrediction:
		if nav.Match == nil {
			return "/"
		}
		return s.predictionURL(nav.Match.ID, s.encodeState(nav), false)
	default:
		return "/login"
	}
}

func (s *Server) encodeState(nav views.Navigation) string {
	if nav.Match == nil {
		return ""
	}
	state, err := s.navState.Encode(*nav.Match)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", nav.Match.ID).Msg("Failed to encode navigation state")
		return ""
	}
	return state
}

func (s *Server) predictionURL(id int64, state string, includeAI bool) string {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	if includeAI {
		q.Set("ai", "1")
	}
	u := "/predict/" + strconv.FormatInt(id, 10)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	view := views.NewLogin(s.backend.Auth, s.store(r), s.log)
	view.SetMode(views.ParseMode(r.URL.Query().Get("mode")))
	s.render(w, http.StatusOK, "login", loginPage{View: view, Hint: views.DemoHint})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view := views.NewLogin(s.backend.Auth, s.store(r), s.log)
	view.SetMode(views.ParseMode(r.PostForm.Get("mode")))
	view.Username = r.PostForm.Get("username")
	view.Password = r.PostForm.Get("password")

	nav, err := view.Submit(r.Context())
	if nav.Changed() {
		http.Redirect(w, r, s.navigationURL(nav), http.StatusSeeOther)
		return
	}

	view.Password = ""
	s.render(w, loginStatus(err), "login", loginPage{View: view, Hint: views.DemoHint})
}

// loginStatus maps a failed sign-in to a status code. Only a 4xx answer from
// the backend is a rejection of the credentials; anything else is upstream
// trouble.
func loginStatus(err error) int {
	if errors.Is(err, views.ErrMissingCredentials) {
		return http.StatusBadRequest
	}
	if err == nil {
		// authenticated, but the session cookie could not be written
		return http.StatusInternalServerError
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := views.NewHome(s.backend.Matches, s.store(r), s.loc, s.log)
	_ = view.Load(r.Context()) // failure is logged and shown by the view

	cards := view.Cards()
	links := make([]cardLink, 0, len(cards))
	for i, card := range cards {
		nav, _ := view.Select(i)
		links = append(links, cardLink{Card: card, Href: s.navigationURL(nav)})
	}

	s.render(w, http.StatusOK, "home", homePage{
		View:     view,
		Greeting: view.Greeting(),
		Subtitle: views.HomeSubtitle,
		Loading:  views.MsgLoadingMatches,
		Cards:    links,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	nav := views.Logout(r.Context(), s.store(r), s.log)
	http.Redirect(w, r, s.navigationURL(nav), http.StatusSeeOther)
}

// predictionView rebuilds the prediction page from the state parameter. A
// missing, tampered or mismatched state gives a view without a match.
func (s *Server) predictionView(r *http.Request, state string) *views.Prediction {
	nav := views.Navigation{Route: views.RoutePrediction}
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		nav.Match = s.navState.Decode(state, id)
	}
	return views.NewPrediction(s.backend.Predictions, nav, s.loc, s.log)
}

func (s *Server) handlePredictionPage(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	view := s.predictionView(r, state)
	if !view.HasMatch() {
		s.renderFallback(w)
		return
	}

	view.IncludeAI = r.URL.Query().Get("ai") == "1"
	if key, ok := s.clientKey(r); ok && s.inflight.pending(key) {
		view.Pending = true
	}
	s.renderPrediction(w, http.StatusOK, view, state)
}

func (s *Server) handlePredictionSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state := r.PostForm.Get("state")
	view := s.predictionView(r, state)
	if !view.HasMatch() {
		s.renderFallback(w)
		return
	}
	view.IncludeAI = formBool(r.PostForm.Get("includeAi"))

	if r.PostForm.Get("action") == "restart" {
		view.Restart()
		http.Redirect(w, r, s.predictionURL(view.Match.ID, state, view.IncludeAI), http.StatusSeeOther)
		return
	}

	key, ok := s.clientKey(r)
	if !ok {
		key = r.RemoteAddr
	}
	if !s.inflight.acquire(key) {
		view.Pending = true
		s.renderPrediction(w, http.StatusConflict, view, state)
		return
	}
	defer s.inflight.release(key)

	status := http.StatusOK
	if err := view.Predict(r.Context()); err != nil {
		status = http.StatusBadGateway
	}
	s.renderPrediction(w, status, view, state)
}

func (s *Server) renderPrediction(w http.ResponseWriter, status int, view *views.Prediction, state string) {
	label, class := view.Confidence()
	s.render(w, status, "prediction", predictionPage{
		View:            view,
		Action:          "/predict/" + strconv.FormatInt(view.Match.ID, 10),
		State:           state,
		ToggleLabel:     views.ToggleLabel,
		Bars:            view.Bars(),
		Score:           view.ExpectedScore(),
		ConfidenceLabel: label,
		ConfidenceClass: class,
		Analysis:        view.Analysis(),
	})
}

func (s *Server) renderFallback(w http.ResponseWriter) {
	s.render(w, http.StatusOK, "fallback", fallbackPage{Message: views.MsgNoMatch})
}

// clientKey identifies the browser for per-browser bookkeeping.
func (s *Server) clientKey(r *http.Request) (string, bool) {
	store, ok := session.FromContext(r.Context())
	if !ok {
		return "", false
	}
	rs, ok := store.(*session.RequestStore)
	if !ok {
		return "", false
	}
	id, err := rs.ClientID()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to assign client id")
		return "", false
	}
	return id, true
}

func formBool(v string) bool {
	switch v {
	case "on", "1", "true":
		return true
	}
	return false
}
