package providers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/weather"
)

// API Docs: https://open-meteo.com/en/docs
const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

var currentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"weather_code",
	"wind_speed_10m",
}

// OpenMeteoProvider implements weather.ConditionsFetcher against the
// Open-Meteo forecast API.
type OpenMeteoProvider struct {
	httpCfg HTTPClientConfig
	logger  *logrus.Entry
}

// NewOpenMeteoProvider creates a provider. An empty baseURL selects the public endpoint.
func NewOpenMeteoProvider(client *http.Client, baseURL string, logger *logrus.Entry) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultForecastURL
	}
	return &OpenMeteoProvider{
		httpCfg: HTTPClientConfig{Client: client, BaseURL: baseURL},
		logger:  logger.WithField("provider", "openmeteo-forecast"),
	}
}

type forecastPayload struct {
	Timezone string `json:"timezone"`
	Current  *struct {
		Time                string  `json:"time"`
		Temperature2M       float64 `json:"temperature_2m"`
		RelativeHumidity2M  float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10M        float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// FetchConditions requests the current conditions for lat/lon and returns
// them paired with place, which is passed through unchanged.
func (p *OpenMeteoProvider) FetchConditions(ctx context.Context, lat, lon float64, place weather.PlaceRecord) (weather.Observation, error) {
	subject := place.Name
	if subject == "" {
		subject = "this location"
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current", strings.Join(currentFields, ","))
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "auto")

		u := p.httpCfg.BaseURL + "?" + values.Encode()
		p.logger.WithField("url", u).Debug("fetching current conditions")
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	var payload forecastPayload
	if err := doJSONRequest(ctx, p.httpCfg, "cannot fetch weather", subject, buildRequest, &payload); err != nil {
		return weather.Observation{}, err
	}
	if payload.Current == nil {
		return weather.Observation{}, &weather.NetworkError{
			Op:      "cannot fetch weather",
			Subject: subject,
			Err:     errMissingCurrent,
		}
	}

	c := payload.Current
	return weather.Observation{
		Conditions: &weather.Conditions{
			Temperature:         c.Temperature2M,
			ApparentTemperature: c.ApparentTemperature,
			Humidity:            c.RelativeHumidity2M,
			WindSpeed:           c.WindSpeed10M,
			WeatherCode:         c.WeatherCode,
			ObservedAt:          parseObservedAt(c.Time, payload.Timezone),
		},
		Place: &place,
	}, nil
}

// parseObservedAt parses Open-Meteo's "2006-01-02T15:04" local time stamp.
// Falls back to now when the stamp or zone is unusable.
func parseObservedAt(stamp, tz string) time.Time {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04", stamp, loc)
	if err != nil {
		return time.Now().UTC()
	}
	return ts.UTC()
}
