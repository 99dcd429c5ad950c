package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Total(t *testing.T) {
	for code := -1; code <= 100; code++ {
		c := Classify(code)
		assert.NotEmpty(t, c.Description, "code %d", code)
		assert.NotEmpty(t, c.Icon, "code %d", code)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code int
		want Classification
	}{
		{0, Classification{Description: "clear", Icon: "fas fa-sun", Background: "clear-sky"}},
		{3, Classification{Description: "overcast", Icon: "fas fa-cloud", Background: "overcast-clouds"}},
		{66, Classification{Description: "light freezing rain", Icon: "fas fa-icicles", Background: "rain"}},
		{99, Classification{Description: "thunderstorm with heavy hail", Icon: "fas fa-cloud-bolt", Background: "thunderstorm"}},
		{100, Classification{Description: "unknown code 100", Icon: UnknownIcon}},
		{4, Classification{Description: "unknown code 4", Icon: UnknownIcon}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.code), "code %d", tt.code)
	}
}

func TestPlaceRecord_CardID(t *testing.T) {
	assert.Equal(t, "city-123", PlaceRecord{ID: "123", Name: "Beijing"}.CardID())
	assert.Equal(t, "current-location", NewLocalPlace(1, 2).CardID())
}

func TestObservation_Complete(t *testing.T) {
	assert.False(t, Observation{}.Complete())
	assert.False(t, Observation{Conditions: &Conditions{}}.Complete())
	assert.False(t, Observation{Place: &PlaceRecord{}}.Complete())
	assert.True(t, Observation{Conditions: &Conditions{}, Place: &PlaceRecord{}}.Complete())
}
