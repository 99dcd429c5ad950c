package weather

import (
	"time"
)

// LocalPlaceID is the identifier reserved for the device's own location.
const LocalPlaceID = "current-location"

// PlaceRecord is a resolved, named location with coordinates.
// Records are values: they are replaced, never mutated.
type PlaceRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsLocal     bool    `json:"isLocal"`
}

// NewLocalPlace synthesizes the record used for device geolocation results.
func NewLocalPlace(lat, lon float64) PlaceRecord {
	return PlaceRecord{
		ID:        LocalPlaceID,
		Latitude:  lat,
		Longitude: lon,
		IsLocal:   true,
	}
}

// CardID returns the stable key of the card rendered for this place.
func (p PlaceRecord) CardID() string {
	if p.IsLocal {
		return LocalPlaceID
	}
	return "city-" + p.ID
}

// Conditions is a snapshot of current measurements for a coordinate pair.
type Conditions struct {
	Temperature         float64   `json:"temperatureC"`
	ApparentTemperature float64   `json:"apparentTemperatureC"`
	Humidity            float64   `json:"humidityPercent"`
	WindSpeed           float64   `json:"windSpeedMS"`
	WeatherCode         int       `json:"weatherCode"`
	ObservedAt          time.Time `json:"observedAt"`
}

// Observation pairs fetched conditions with the place that produced the
// coordinates, so rendering needs no second lookup.
type Observation struct {
	Conditions *Conditions  `json:"conditions"`
	Place      *PlaceRecord `json:"place"`
}

// Complete reports whether both halves of the pair are present.
func (o Observation) Complete() bool {
	return o.Conditions != nil && o.Place != nil
}
