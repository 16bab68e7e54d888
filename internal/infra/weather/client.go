// Package weather implements the WeatherClient service against the
// OpenWeatherMap current-conditions API.
package weather

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

// New creates the OpenWeatherMap client. The HTTP client is constructed and
// owned by the caller.
func New(params Params) (service.WeatherClient, error) {
	if params.Config.Weather == nil {
		return nil, errors.New("weather configuration is missing")
	}
	if params.Client == nil {
		return nil, errors.New("weather http client is missing")
	}

	return &client{
		baseURL:    params.Config.Weather.BaseURL,
		apiKey:     params.Config.Weather.APIKey,
		httpClient: params.Client,
		logger:     params.Logger,
	}, nil
}

// currentResponse mirrors the subset of the OpenWeatherMap /weather payload
// the project consumes.
type currentResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

func (c *client) CurrentWeather(ctx context.Context, location, units string) (*entity.CurrentWeather, error) {
	endpoint, err := url.Parse(c.baseURL + "/weather")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse weather endpoint")
	}

	query := endpoint.Query()
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", units)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build weather request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Weather upstream request failed", slog.Any("error", err))

		return nil, domainErrors.ErrUpstreamUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	default:
		c.logger.Error("Weather upstream returned unexpected status",
			slog.Int("status", resp.StatusCode),
			slog.String("location", location))

		return nil, domainErrors.ErrUpstreamUnavailable
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode weather response")
	}

	current := &entity.CurrentWeather{
		Location:    payload.Name,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Units:       units,
		ObservedAt:  time.Unix(payload.Dt, 0).UTC(),
	}
	if current.Location == "" {
		current.Location = location
	}
	if len(payload.Weather) > 0 {
		current.Condition = payload.Weather[0].Main
		current.Description = payload.Weather[0].Description
	}

	return current, nil
}
