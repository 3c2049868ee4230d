package views

import (
	"context"
	"errors"

	"github.com/aristath/moneyball/internal/domain"
	"github.com/aristath/moneyball/internal/session"
	testingpkg "github.com/aristath/moneyball/internal/testing"
)

type fakeAuth struct {
	resp  *domain.AuthResponse
	err   error
	calls []string
	role  domain.Role
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*domain.AuthResponse, error) {
	f.calls = append(f.calls, "login:"+username+":"+password)
	return f.resp, f.err
}

func (f *fakeAuth) Signup(ctx context.Context, username, password string, role domain.Role) (*domain.AuthResponse, error) {
	f.calls = append(f.calls, "signup:"+username+":"+password)
	f.role = role
	return f.resp, f.err
}

type fakeLister struct {
	matches []domain.Match
	err     error
	calls   int
}

func (f *fakeLister) Upcoming(ctx context.Context) ([]domain.Match, error) {
	f.calls++
	return f.matches, f.err
}

type predictArgs struct {
	home, away int64
	includeAI  bool
}

type fakePredictor struct {
	result *domain.Prediction
	err    error
	calls  []predictArgs
}

func (f *fakePredictor) Predict(ctx context.Context, home, away int64, includeAI bool) (*domain.Prediction, error) {
	f.calls = append(f.calls, predictArgs{home, away, includeAI})
	return f.result, f.err
}

type brokenStore struct{}

func (brokenStore) Load(ctx context.Context) (session.Session, error) {
	return session.Session{}, errors.New("disk gone")
}
func (brokenStore) Save(ctx context.Context, s session.Session) error { return errors.New("disk gone") }
func (brokenStore) Clear(ctx context.Context) error                   { return errors.New("disk gone") }

func sampleMatch() domain.Match {
	return testingpkg.SampleMatch()
}

func samplePrediction() *domain.Prediction {
	return testingpkg.SamplePrediction()
}
