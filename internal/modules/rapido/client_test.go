// README: Fare-estimate client tests against a local fake upstream.
package rapido

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_FetchFareEstimate(t *testing.T) {
	raw := fareResponse(rideEntry(RideTypeAuto, 145, 145))
	var got fareEstimateReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "pwa", r.Header.Get("channel-name"))
		require.Equal(t, "customer", r.Header.Get("channel-entity"))
		require.Equal(t, "214", r.Header.Get("appversion"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write(envelope(t, raw))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	body, err := c.FetchFareEstimate(context.Background(), testRequest())
	require.NoError(t, err)

	require.Equal(t, DefaultDeviceID, got.DeviceID)
	require.Equal(t, "Loni Kalbhor", got.PickupLocation.DisplayName)
	require.Equal(t, "Loni Kalbhor", got.PickupLocation.Address)
	require.InDelta(t, 73.8665321, got.DropLocation.Lng, 1e-9)

	res, err := Decode(body)
	require.NoError(t, err)
	require.Len(t, res.Rides, 1)
	require.Equal(t, "Rapido Auto", res.Rides[0].DisplayName)
}

func TestClient_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "dev-1", 5*time.Second)
	_, err := c.FetchFareEstimate(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrUpstream)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(srv.URL, "dev-1", 5*time.Second)
	_, err := c.FetchFareEstimate(ctx, testRequest())
	require.ErrorIs(t, err, ErrUpstream)
}

func TestClient_DeadlineKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	c := NewClient(srv.URL, "dev-1", 0)
	_, err := c.FetchFareEstimate(ctx, testRequest())
	require.ErrorIs(t, err, ErrUpstream)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}
