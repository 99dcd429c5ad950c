package providers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/weather"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingProvider implements weather.Resolver against the Open-Meteo
// geocoding API.
type GeocodingProvider struct {
	httpCfg  HTTPClientConfig
	language string
	logger   *logrus.Entry
}

// NewGeocodingProvider creates a resolver. An empty baseURL selects the
// public endpoint; language is the preferred result language.
func NewGeocodingProvider(client *http.Client, baseURL, language string, logger *logrus.Entry) *GeocodingProvider {
	if baseURL == "" {
		baseURL = defaultGeocodingURL
	}
	if language == "" {
		language = "en"
	}
	return &GeocodingProvider{
		httpCfg:  HTTPClientConfig{Client: client, BaseURL: baseURL},
		language: language,
		logger:   logger.WithField("provider", "openmeteo-geocoding"),
	}
}

type geocodingPayload struct {
	Results []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	} `json:"results"`
}

// Resolve returns the first-ranked match for name.
func (p *GeocodingProvider) Resolve(ctx context.Context, name string) (weather.PlaceRecord, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", "1")
		values.Set("language", p.language)
		values.Set("format", "json")

		u := p.httpCfg.BaseURL + "?" + values.Encode()
		p.logger.WithField("url", u).Debug("geocoding place")
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	var payload geocodingPayload
	if err := doJSONRequest(ctx, p.httpCfg, "geocoding failed", "", buildRequest, &payload); err != nil {
		return weather.PlaceRecord{}, err
	}

	if len(payload.Results) == 0 {
		return weather.PlaceRecord{}, &weather.NotFoundError{Query: name}
	}

	r := payload.Results[0]
	return weather.PlaceRecord{
		ID:          strconv.FormatInt(r.ID, 10),
		Name:        r.Name,
		CountryCode: r.CountryCode,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}, nil
}
