package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/weather"
)

// Renderer builds cards from observations. It does no I/O.
type Renderer struct {
	logger *logrus.Entry
}

func NewRenderer(logger *logrus.Entry) *Renderer {
	return &Renderer{logger: logger.WithField("component", "card-renderer")}
}

// Render builds the card for obs. savedKey is the saved-location key the
// removal control reports back; it is ignored for the local card.
// An incomplete observation is logged and yields weather.ErrMalformedInput.
func (r *Renderer) Render(obs weather.Observation, savedKey string, onRemove RemoveFunc) (*Card, error) {
	if !obs.Complete() {
		r.logger.WithFields(logrus.Fields{
			"hasConditions": obs.Conditions != nil,
			"hasPlace":      obs.Place != nil,
		}).Error("invalid observation passed to renderer")
		return nil, weather.ErrMalformedInput
	}

	place := *obs.Place
	cond := obs.Conditions
	mapped := weather.Classify(cond.WeatherCode)

	if place.IsLocal {
		savedKey = ""
	}

	c := &Card{
		ID:          place.CardID(),
		DisplayName: DisplayName(place),
		Description: mapped.Description,
		Icon:        mapped.Icon,
		Background:  mapped.Background,
		Temperature: formatDegrees(cond.Temperature),
		FeelsLike:   formatDegrees(cond.ApparentTemperature),
		Humidity:    fmt.Sprintf("%d%%", int(roundHalfUp(cond.Humidity))),
		Wind:        fmt.Sprintf("%.1f m/s", roundHalfUp(cond.WindSpeed*10)/10),
		ObservedAt:  cond.ObservedAt,
		Place:       place,
		SavedKey:    savedKey,
		onRemove:    onRemove,
	}

	r.logger.WithFields(logrus.Fields{"cardId": c.ID, "name": c.DisplayName}).Debug("card rendered")
	return c, nil
}

// DisplayName is "{name}, {countryCode}", without the trailing comma when
// the country code is absent.
func DisplayName(p weather.PlaceRecord) string {
	if p.IsLocal {
		return LocalDisplayName
	}
	s := strings.TrimSpace(p.Name + ", " + p.CountryCode)
	return strings.TrimSuffix(s, ",")
}

func formatDegrees(v float64) string {
	return fmt.Sprintf("%d°C", int(roundHalfUp(v)))
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf, so -2.5
// becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
