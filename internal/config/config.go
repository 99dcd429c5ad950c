package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/geolocate"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds every outbound geocoding and forecast call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// DBPath is the SQLite file holding saved locations and the theme.
	// Empty keeps state in memory only.
	DBPath string

	GeocodingURL      string `validate:"omitempty,url"`
	ForecastURL       string `validate:"omitempty,url"`
	GeocodingLanguage string `validate:"required"`

	// Device position. Without coordinates the position is reported as
	// unavailable; with GeolocationEnabled=false permission is denied.
	GeolocationEnabled bool
	DeviceLatitude     *float64      `validate:"omitempty,latitude"`
	DeviceLongitude    *float64      `validate:"omitempty,longitude"`
	GeolocationTimeout time.Duration `validate:"gt=0"`

	ClockTimezone string

	LogLevel  string `validate:"oneof=trace debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DBPath = os.Getenv("DB_PATH")
	cfg.GeocodingURL = os.Getenv("GEOCODING_URL")
	cfg.ForecastURL = os.Getenv("FORECAST_URL")
	cfg.GeocodingLanguage = getenvDefault("GEOCODING_LANGUAGE", "en")
	cfg.ClockTimezone = getenvDefault("CLOCK_TIMEZONE", "Local")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "text"))
	cfg.GeolocationEnabled = getenvBool("GEOLOCATION_ENABLED", true)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.GeolocationTimeout, err = getenvDuration("GEOLOCATION_TIMEOUT", 7*time.Second); err != nil {
		return nil, err
	}
	if cfg.DeviceLatitude, err = getenvFloat("DEVICE_LATITUDE"); err != nil {
		return nil, err
	}
	if cfg.DeviceLongitude, err = getenvFloat("DEVICE_LONGITUDE"); err != nil {
		return nil, err
	}
	if (cfg.DeviceLatitude == nil) != (cfg.DeviceLongitude == nil) {
		return nil, fmt.Errorf("DEVICE_LATITUDE and DEVICE_LONGITUDE must be set together")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Location returns the clock's time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClockTimezone)
	if err != nil {
		logrus.WithError(err).WithField("tz", c.ClockTimezone).Warn("unknown time zone, using UTC")
		return time.UTC
	}
	return loc
}

// Locator returns the device locator described by the config.
func (c *AppConfig) Locator() geolocate.Locator {
	loc := geolocate.StaticLocator{Allowed: c.GeolocationEnabled}
	if c.DeviceLatitude != nil && c.DeviceLongitude != nil {
		loc.Position = &geolocate.Position{Latitude: *c.DeviceLatitude, Longitude: *c.DeviceLongitude}
	}
	return loc
}

// NewLogger builds the root logger from the configured level and format.
func (c *AppConfig) NewLogger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
