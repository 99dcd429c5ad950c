// Package card turns observations into display cards and keeps the ordered
// board they are shown on.
package card

import (
	"time"

	"github.com/i474232898/weather-cards/internal/weather"
)

// LocalDisplayName is shown on the device-location card.
const LocalDisplayName = "Current location"

// RemoveFunc is invoked by a card's removal control.
// savedKey is empty for the device-location card.
type RemoveFunc func(cardID, savedKey string)

// Card is the rendered unit for one place's current conditions. It is a
// plain value object so any presentation layer can draw it.
type Card struct {
	ID          string              `json:"cardId"`
	DisplayName string              `json:"displayName"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Background  string              `json:"background,omitempty"`
	Temperature string              `json:"temperature"`
	FeelsLike   string              `json:"feelsLike"`
	Humidity    string              `json:"humidity"`
	Wind        string              `json:"wind"`
	ObservedAt  time.Time           `json:"observedAt"`
	Place       weather.PlaceRecord `json:"place"`
	SavedKey    string              `json:"savedKey,omitempty"`

	onRemove RemoveFunc
}

// Remove activates the card's removal control.
func (c *Card) Remove() {
	if c.onRemove != nil {
		c.onRemove(c.ID, c.SavedKey)
	}
}
