package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockBaseURL = "https://backend.test/api"

// setupHTTPMock routes the client's transport through httpmock.
func setupHTTPMock(t *testing.T) *Client {
	t.Helper()

	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewClient(mockBaseURL, staticToken("tok"), zerolog.Nop(), WithHTTPClient(hc))
}

func TestTransportFailurePropagates(t *testing.T) {
	client := setupHTTPMock(t)

	netErr := errors.New("connection refused")
	httpmock.RegisterResponder(http.MethodGet, mockBaseURL+"/matches/upcoming",
		httpmock.NewErrorResponder(netErr))

	matches, err := client.Matches.Upcoming(context.Background())
	require.Error(t, err)
	assert.Nil(t, matches)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, MessageOf(err))
}

func TestNoRetryOnFailure(t *testing.T) {
	client := setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodPost, mockBaseURL+"/predictions/predict",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"message":"model warming up"}`))

	_, err := client.Predictions.Predict(context.Background(), 1, 2, false)
	require.Error(t, err)
	assert.Equal(t, "model warming up", MessageOf(err))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestBearerHeaderOnEveryGroup(t *testing.T) {
	client := setupHTTPMock(t)

	requireBearer := func(body string) httpmock.Responder {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer tok" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{"message":"missing token"}`), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, body), nil
		}
	}

	httpmock.RegisterResponder(http.MethodGet, mockBaseURL+"/matches/upcoming", requireBearer(`[]`))
	httpmock.RegisterResponder(http.MethodGet, mockBaseURL+"/matches/3", requireBearer(`{"id":3}`))
	httpmock.RegisterResponder(http.MethodGet, mockBaseURL+"/teams", requireBearer(`[]`))
	httpmock.RegisterResponder(http.MethodPost, mockBaseURL+"/predictions/predict",
		requireBearer(`{"homeWinProbability":0.4,"drawProbability":0.3,"awayWinProbability":0.3,"confidence":"LOW"}`))

	ctx := context.Background()
	_, err := client.Matches.Upcoming(ctx)
	require.NoError(t, err)
	_, err = client.Matches.ByID(ctx, 3)
	require.NoError(t, err)
	_, err = client.Teams.All(ctx)
	require.NoError(t, err)
	_, err = client.Predictions.Predict(ctx, 1, 2, false)
	require.NoError(t, err)

	assert.Equal(t, 4, httpmock.GetTotalCallCount())
}
