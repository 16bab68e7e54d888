// Package transit implements the TransitClient service against a SIRI
// stop-monitoring JSON feed.
package transit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"
	domainErrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Client *http.Client
	Logger *slog.Logger
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates the SIRI stop-monitoring client. The HTTP client is constructed
// and owned by the caller.
func New(params Params) (service.TransitClient, error) {
	if params.Config.Transit == nil {
		return nil, errors.New("transit configuration is missing")
	}
	if params.Client == nil {
		return nil, errors.New("transit http client is missing")
	}

	return &client{
		baseURL:    params.Config.Transit.BaseURL,
		apiKey:     params.Config.Transit.APIKey,
		httpClient: params.Client,
		logger:     params.Logger,
	}, nil
}

// stopMonitoringResponse mirrors the subset of the SIRI StopMonitoring
// envelope the project consumes.
type stopMonitoringResponse struct {
	Siri struct {
		ServiceDelivery struct {
			StopMonitoringDelivery []struct {
				MonitoredStopVisit []monitoredStopVisit `json:"MonitoredStopVisit"`
			} `json:"StopMonitoringDelivery"`
		} `json:"ServiceDelivery"`
	} `json:"Siri"`
}

type monitoredStopVisit struct {
	MonitoredVehicleJourney struct {
		LineRef         string `json:"LineRef"`
		DestinationName string `json:"DestinationName"`
		VehicleRef      string `json:"VehicleRef"`
		MonitoredCall   struct {
			StopPointRef        string `json:"StopPointRef"`
			ExpectedArrivalTime string `json:"ExpectedArrivalTime"`
		} `json:"MonitoredCall"`
	} `json:"MonitoredVehicleJourney"`
}

func (c *client) StopArrivals(ctx context.Context, stopID, routeID string) ([]*entity.StopArrival, error) {
	endpoint, err := url.Parse(c.baseURL + "/stop-monitoring.json")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse transit endpoint")
	}

	query := endpoint.Query()
	query.Set("key", c.apiKey)
	query.Set("MonitoringRef", stopID)
	if routeID != "" {
		query.Set("LineRef", routeID)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transit request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Transit upstream request failed", slog.Any("error", err))

		return nil, domainErrors.ErrUpstreamUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Transit upstream returned unexpected status",
			slog.Int("status", resp.StatusCode),
			slog.String("stopId", stopID))

		return nil, domainErrors.ErrUpstreamUnavailable
	}

	var payload stopMonitoringResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode transit response")
	}

	arrivals := make([]*entity.StopArrival, 0)
	for _, delivery := range payload.Siri.ServiceDelivery.StopMonitoringDelivery {
		for _, visit := range delivery.MonitoredStopVisit {
			journey := visit.MonitoredVehicleJourney
			arrival := &entity.StopArrival{
				RouteID:     journey.LineRef,
				Destination: journey.DestinationName,
				StopID:      journey.MonitoredCall.StopPointRef,
				VehicleRef:  journey.VehicleRef,
			}
			if raw := journey.MonitoredCall.ExpectedArrivalTime; raw != "" {
				if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
					arrival.ExpectedArrival = &parsed
				}
			}
			if arrival.StopID == "" {
				arrival.StopID = stopID
			}
			arrivals = append(arrivals, arrival)
		}
	}

	return arrivals, nil
}
