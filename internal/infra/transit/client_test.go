package transit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackwise/config"
	domainerrors "trackwise/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(t *testing.T, baseURL string) *client {
	t.Helper()

	svc, err := New(Params{
		Config: &config.Config{
			Transit: &config.TransitConfig{BaseURL: baseURL, APIKey: "test-key"},
		},
		Client: &http.Client{Timeout: 5 * time.Second},
		Logger: testLogger,
	})
	require.NoError(t, err)

	return svc.(*client)
}

const samplePayload = `{
	"Siri": {
		"ServiceDelivery": {
			"StopMonitoringDelivery": [{
				"MonitoredStopVisit": [{
					"MonitoredVehicleJourney": {
						"LineRef": "MTA NYCT_B63",
						"DestinationName": "Bay Ridge",
						"VehicleRef": "MTA_1234",
						"MonitoredCall": {
							"StopPointRef": "MTA_308209",
							"ExpectedArrivalTime": "2026-08-26T12:03:00Z"
						}
					}
				}, {
					"MonitoredVehicleJourney": {
						"LineRef": "MTA NYCT_B63",
						"DestinationName": "Bay Ridge",
						"MonitoredCall": {}
					}
				}]
			}]
		}
	}
}`

func TestClient_StopArrivals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stop-monitoring.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "MTA_308209", r.URL.Query().Get("MonitoringRef"))
		assert.Equal(t, "MTA NYCT_B63", r.URL.Query().Get("LineRef"))

		_, _ = w.Write([]byte(samplePayload))
	}))
	t.Cleanup(server.Close)

	arrivals, err := newTestClient(t, server.URL).StopArrivals(context.Background(), "MTA_308209", "MTA NYCT_B63")
	require.NoError(t, err)
	require.Len(t, arrivals, 2)

	first := arrivals[0]
	assert.Equal(t, "MTA NYCT_B63", first.RouteID)
	assert.Equal(t, "Bay Ridge", first.Destination)
	assert.Equal(t, "MTA_308209", first.StopID)
	assert.Equal(t, "MTA_1234", first.VehicleRef)
	require.NotNil(t, first.ExpectedArrival)
	assert.Equal(t, time.Date(2026, 8, 26, 12, 3, 0, 0, time.UTC), first.ExpectedArrival.UTC())

	// A visit without a predicted time still appears, with the monitored
	// stop id filled in.
	second := arrivals[1]
	assert.Nil(t, second.ExpectedArrival)
	assert.Equal(t, "MTA_308209", second.StopID)
}

func TestClient_StopArrivals_OmitsRouteFilterWhenEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("LineRef"))
		_, _ = w.Write([]byte(`{"Siri":{"ServiceDelivery":{"StopMonitoringDelivery":[]}}}`))
	}))
	t.Cleanup(server.Close)

	arrivals, err := newTestClient(t, server.URL).StopArrivals(context.Background(), "MTA_308209", "")
	require.NoError(t, err)
	assert.Empty(t, arrivals)
}

func TestClient_StopArrivals_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server.URL).StopArrivals(context.Background(), "MTA_308209", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstreamUnavailable))
}

func TestClient_StopArrivals_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestClient(t, server.URL).StopArrivals(context.Background(), "MTA_308209", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstreamUnavailable))
}
