package card

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-cards/internal/weather"
)

func testRenderer() *Renderer {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewRenderer(logrus.NewEntry(l))
}

func TestRenderer_Render(t *testing.T) {
	place := weather.PlaceRecord{ID: "123", Name: "Beijing", CountryCode: "CN", Latitude: 39.90, Longitude: 116.40}
	cond := weather.Conditions{Temperature: 21.4, ApparentTemperature: 20.1, Humidity: 45, WindSpeed: 3.2, WeatherCode: 0}

	var removedID, removedKey string
	c, err := testRenderer().Render(
		weather.Observation{Conditions: &cond, Place: &place},
		"beijing",
		func(cardID, savedKey string) { removedID, removedKey = cardID, savedKey },
	)
	require.NoError(t, err)

	assert.Equal(t, "city-123", c.ID)
	assert.Equal(t, "Beijing, CN", c.DisplayName)
	assert.Equal(t, "21°C", c.Temperature)
	assert.Equal(t, "20°C", c.FeelsLike)
	assert.Equal(t, "45%", c.Humidity)
	assert.Equal(t, "3.2 m/s", c.Wind)
	assert.Equal(t, "clear", c.Description)
	assert.Equal(t, "fas fa-sun", c.Icon)
	assert.Equal(t, "clear-sky", c.Background)

	c.Remove()
	assert.Equal(t, "city-123", removedID)
	assert.Equal(t, "beijing", removedKey)
}

func TestRenderer_RoundsHalvesUp(t *testing.T) {
	place := weather.PlaceRecord{ID: "3143244", Name: "Oslo", CountryCode: "NO"}

	tests := []struct {
		name     string
		temp     float64
		humidity float64
		wind     float64
		wantTemp string
		wantHum  string
		wantWind string
	}{
		{"negative half", -0.5, 50, 1, "0°C", "50%", "1.0 m/s"},
		{"negative two and a half", -2.5, 50, 1, "-2°C", "50%", "1.0 m/s"},
		{"positive half", 2.5, 50.5, 1, "3°C", "51%", "1.0 m/s"},
		{"below negative half", -2.6, 0, 0, "-3°C", "0%", "0.0 m/s"},
		{"wind tie", 0, 0, 0.25, "0°C", "0%", "0.3 m/s"},
		{"wind tie odd", 0, 0, 4.25, "0°C", "0%", "4.3 m/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := weather.Conditions{Temperature: tt.temp, ApparentTemperature: tt.temp, Humidity: tt.humidity, WindSpeed: tt.wind}
			c, err := testRenderer().Render(weather.Observation{Conditions: &cond, Place: &place}, "oslo", nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTemp, c.Temperature)
			assert.Equal(t, tt.wantTemp, c.FeelsLike)
			assert.Equal(t, tt.wantHum, c.Humidity)
			assert.Equal(t, tt.wantWind, c.Wind)
		})
	}
}

func TestRenderer_RenderLocal(t *testing.T) {
	place := weather.NewLocalPlace(59.91, 10.75)
	cond := weather.Conditions{Temperature: -0.4, ApparentTemperature: -3.6, Humidity: 80.6, WindSpeed: 7.25, WeatherCode: 100}

	var removedKey = "unset"
	c, err := testRenderer().Render(
		weather.Observation{Conditions: &cond, Place: &place},
		"ignored",
		func(_, savedKey string) { removedKey = savedKey },
	)
	require.NoError(t, err)

	assert.Equal(t, "current-location", c.ID)
	assert.Equal(t, LocalDisplayName, c.DisplayName)
	assert.Equal(t, "0°C", c.Temperature)
	assert.Equal(t, "-4°C", c.FeelsLike)
	assert.Equal(t, "81%", c.Humidity)
	assert.Equal(t, "unknown code 100", c.Description)
	assert.Empty(t, c.Background)
	assert.Empty(t, c.SavedKey)

	c.Remove()
	assert.Empty(t, removedKey)
}

func TestRenderer_Malformed(t *testing.T) {
	place := weather.PlaceRecord{ID: "1"}
	cond := weather.Conditions{}

	for _, obs := range []weather.Observation{
		{},
		{Place: &place},
		{Conditions: &cond},
	} {
		c, err := testRenderer().Render(obs, "", nil)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, weather.ErrMalformedInput)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Oslo", DisplayName(weather.PlaceRecord{Name: "Oslo"}))
	assert.Equal(t, "Oslo, NO", DisplayName(weather.PlaceRecord{Name: "Oslo", CountryCode: "NO"}))
}

func TestBoard(t *testing.T) {
	b := NewBoard()

	b.Append(&Card{ID: "city-1"})
	b.Append(&Card{ID: "city-2"})
	b.Prepend(&Card{ID: "current-location"})
	b.Append(&Card{ID: "city-1", DisplayName: "refreshed"})

	ids := func() []string {
		var out []string
		for _, c := range b.Cards() {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []string{"current-location", "city-2", "city-1"}, ids())

	got, ok := b.Get("city-1")
	require.True(t, ok)
	assert.Equal(t, "refreshed", got.DisplayName)

	assert.True(t, b.Remove("city-2"))
	assert.False(t, b.Remove("city-2"))
	assert.False(t, b.Has("city-2"))
	assert.Equal(t, []string{"current-location", "city-1"}, ids())
}

func TestBoard_Loading(t *testing.T) {
	b := NewBoard()
	assert.False(t, b.Loading())

	done := b.StartLoading()
	assert.True(t, b.Loading())

	done()
	done()
	assert.False(t, b.Loading())
}
