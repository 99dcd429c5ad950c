package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/card"
	"github.com/i474232898/weather-cards/internal/geolocate"
	"github.com/i474232898/weather-cards/internal/metrics"
	"github.com/i474232898/weather-cards/internal/store"
	"github.com/i474232898/weather-cards/internal/weather"
)

// DefaultGeolocationTimeout bounds the wait for the device position.
const DefaultGeolocationTimeout = 7 * time.Second

var (
	// ErrEmptyQuery is returned when a search is submitted without a place name.
	ErrEmptyQuery = errors.New("place name is empty")

	// ErrAlreadyShown is returned when a user search targets a displayed card.
	ErrAlreadyShown = errors.New("already shown")
)

// AlreadyShownError names the place whose card is already displayed.
type AlreadyShownError struct {
	Name string
}

func (e *AlreadyShownError) Error() string {
	return fmt.Sprintf("weather for %s is already shown", e.Name)
}

func (e *AlreadyShownError) Unwrap() error { return ErrAlreadyShown }

// Starter is a collaborator started once at startup, such as the clock.
type Starter interface {
	Start() error
}

// Deps are the collaborators of an Orchestrator. Theme, Clock, Locator and
// Metrics are optional.
type Deps struct {
	Resolver           weather.Resolver
	Fetcher            weather.ConditionsFetcher
	Renderer           *card.Renderer
	Board              *card.Board
	Locations          *store.LocationStore
	Notifier           Notifier
	Locator            geolocate.Locator
	Theme              *ThemeService
	Clock              Starter
	Metrics            *metrics.Metrics
	GeolocationTimeout time.Duration
	Logger             *logrus.Entry
}

// Orchestrator owns the card board and the saved-location set and runs the
// startup, display and removal flows over them.
type Orchestrator struct {
	resolver   weather.Resolver
	fetcher    weather.ConditionsFetcher
	renderer   *card.Renderer
	board      *card.Board
	locations  *store.LocationStore
	notifier   Notifier
	locator    geolocate.Locator
	theme      *ThemeService
	clock      Starter
	metrics    *metrics.Metrics
	geoTimeout time.Duration
	logger     *logrus.Entry

	// mu serializes board and saved-set mutations. It is never held across
	// network calls.
	mu sync.Mutex
	// cardKeys lists every saved key that resolved to a card ID, so that
	// removing the card unsaves all of them.
	cardKeys map[string][]string
}

func NewOrchestrator(d Deps) *Orchestrator {
	if d.GeolocationTimeout <= 0 {
		d.GeolocationTimeout = DefaultGeolocationTimeout
	}
	return &Orchestrator{
		resolver:   d.Resolver,
		fetcher:    d.Fetcher,
		renderer:   d.Renderer,
		board:      d.Board,
		locations:  d.Locations,
		notifier:   d.Notifier,
		locator:    d.Locator,
		theme:      d.Theme,
		clock:      d.Clock,
		metrics:    d.Metrics,
		geoTimeout: d.GeolocationTimeout,
		cardKeys:   make(map[string][]string),
		logger:     d.Logger.WithField("component", "orchestrator"),
	}
}

// Start runs the startup sequence: theme and clock, then local weather,
// then a sequential replay of every saved location. It never fails.
func (o *Orchestrator) Start(ctx context.Context) {
	o.logger.Info("initializing")

	if o.theme != nil {
		o.logger.WithField("theme", o.theme.Load(ctx)).Debug("theme applied")
	}
	if o.clock != nil {
		if err := o.clock.Start(); err != nil {
			o.logger.WithError(err).Warn("failed to start clock")
		}
	}

	o.displayLocal(ctx)

	o.mu.Lock()
	saved := o.locations.Load(ctx)
	o.mu.Unlock()
	o.metrics.SetSavedLocations(len(saved))
	o.logger.WithField("saved", saved).Info("replaying saved locations")
	for _, key := range saved {
		if ctx.Err() != nil {
			return
		}
		// Failures are already surfaced to the user by the flow.
		_, _ = o.Replay(ctx, key)
	}

	o.logger.Info("initialized")
}

func (o *Orchestrator) displayLocal(ctx context.Context) {
	geoCtx, cancel := context.WithTimeout(ctx, o.geoTimeout)
	defer cancel()

	pos, err := geolocate.Locate(geoCtx, o.locator)
	if err != nil {
		o.logger.WithError(err).Warn("cannot get device location")
		o.notify(LevelWarning, geolocationMessage(err))
		return
	}

	_, _ = o.DisplayCoords(ctx, pos.Latitude, pos.Longitude)
}

func geolocationMessage(err error) string {
	switch {
	case errors.Is(err, geolocate.ErrPermissionDenied):
		return "You have denied location permission. Allow location access to see local weather."
	case errors.Is(err, geolocate.ErrPositionUnavailable):
		return "Your location is currently unavailable."
	case errors.Is(err, geolocate.ErrTimeout):
		return "Timed out while getting your location."
	case errors.Is(err, geolocate.ErrUnsupported):
		return "Geolocation is not supported."
	}
	return "Could not get local weather, you can search manually."
}

// Search runs a user-initiated display flow for name. The loading indicator
// is shown until the flow exits, whatever the outcome.
func (o *Orchestrator) Search(ctx context.Context, name string) (*card.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		o.notify(LevelWarning, "Please enter a city name.")
		return nil, ErrEmptyQuery
	}

	done := o.board.StartLoading()
	defer done()

	return o.displayPlace(ctx, name, SavedKey(name), false)
}

// SavedKey is the key a searched place name is saved under.
func SavedKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Replay re-runs the display flow for a saved key without the
// already-shown guard.
func (o *Orchestrator) Replay(ctx context.Context, key string) (*card.Card, error) {
	return o.displayPlace(ctx, key, key, true)
}

// DisplayCoords shows the local card for a device position. The result is
// never saved.
func (o *Orchestrator) DisplayCoords(ctx context.Context, lat, lon float64) (*card.Card, error) {
	place := weather.NewLocalPlace(lat, lon)

	obs, err := o.fetch(ctx, place)
	if err != nil {
		return nil, err
	}
	return o.present(ctx, place.CardID(), obs, "")
}

func (o *Orchestrator) displayPlace(ctx context.Context, name, savedKey string, replay bool) (*card.Card, error) {
	log := o.logger.WithFields(logrus.Fields{"query": name, "replay": replay})

	place, err := o.resolver.Resolve(ctx, name)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, weather.ErrNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		o.metrics.RecordGeocode(outcome)
		log.WithError(err).Warn("geocoding failed")
		o.notify(LevelError, capitalize(err.Error()))
		return nil, err
	}
	o.metrics.RecordGeocode(metrics.OutcomeOK)

	cardID := place.CardID()
	if !replay && o.board.Has(cardID) {
		log.WithField("cardId", cardID).Info("card already displayed")
		o.notify(LevelInfo, fmt.Sprintf("Weather for %s is already shown.", place.Name))
		return nil, &AlreadyShownError{Name: place.Name}
	}

	obs, err := o.fetch(ctx, place)
	if err != nil {
		return nil, err
	}
	return o.present(ctx, cardID, obs, savedKey)
}

func (o *Orchestrator) fetch(ctx context.Context, place weather.PlaceRecord) (weather.Observation, error) {
	obs, err := o.fetcher.FetchConditions(ctx, place.Latitude, place.Longitude, place)
	if err != nil {
		o.metrics.RecordForecast(metrics.OutcomeError)
		o.logger.WithError(err).WithField("place", place.Name).Warn("weather fetch failed")
		o.notify(LevelError, capitalize(err.Error()))
		return weather.Observation{}, err
	}
	o.metrics.RecordForecast(metrics.OutcomeOK)
	return obs, nil
}

// present refreshes the card for cardID with obs and saves savedKey for
// non-local places.
func (o *Orchestrator) present(ctx context.Context, cardID string, obs weather.Observation, savedKey string) (*card.Card, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer func() { o.metrics.SetCardsDisplayed(len(o.board.Cards())) }()

	if o.board.Remove(cardID) {
		o.logger.WithField("cardId", cardID).Debug("removed existing card for refresh")
	}

	c, err := o.renderer.Render(obs, savedKey, o.onRemove)
	if err != nil {
		o.logger.WithError(err).WithField("cardId", cardID).Error("card creation failed")
		return nil, err
	}

	if c.Place.IsLocal {
		o.board.Prepend(c)
		return c, nil
	}
	o.board.Append(c)

	if savedKey != "" {
		if !slices.Contains(o.cardKeys[cardID], savedKey) {
			o.cardKeys[cardID] = append(o.cardKeys[cardID], savedKey)
		}
		if err := o.locations.Add(ctx, savedKey); err != nil {
			o.logger.WithError(err).WithField("key", savedKey).Error("failed to save location")
		}
		o.metrics.SetSavedLocations(len(o.locations.List()))
	}
	return c, nil
}

func (o *Orchestrator) onRemove(cardID, savedKey string) {
	o.Remove(context.Background(), cardID, savedKey)
}

// Remove runs the removal flow: unsave savedKey and every other key that
// resolved to cardID (never for the local card), then take the card off the
// board. A missing card is a logged no-op. It reports whether a card was
// removed.
func (o *Orchestrator) Remove(ctx context.Context, cardID, savedKey string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	log := o.logger.WithFields(logrus.Fields{"cardId": cardID, "key": savedKey})

	keys := o.cardKeys[cardID]
	delete(o.cardKeys, cardID)
	if savedKey != "" && !slices.Contains(keys, savedKey) {
		keys = append(keys, savedKey)
	}

	if cardID != weather.LocalPlaceID && len(keys) > 0 {
		for _, key := range keys {
			if err := o.locations.Remove(ctx, key); err != nil {
				log.WithError(err).WithField("key", key).Error("failed to unsave location")
			}
		}
		o.metrics.SetSavedLocations(len(o.locations.List()))
	}

	removed := o.board.Remove(cardID)
	if !removed {
		log.Warn("no card to remove")
	} else {
		log.Info("card removed")
	}
	o.metrics.SetCardsDisplayed(len(o.board.Cards()))
	return removed
}

// RemoveCard activates the removal control of the displayed card cardID.
func (o *Orchestrator) RemoveCard(ctx context.Context, cardID string) bool {
	c, ok := o.board.Get(cardID)
	if !ok {
		return o.Remove(ctx, cardID, "")
	}
	c.Remove()
	return true
}

// Cards returns the board in display order.
func (o *Orchestrator) Cards() []*card.Card {
	return o.board.Cards()
}

// Loading reports whether a user search is in flight.
func (o *Orchestrator) Loading() bool {
	return o.board.Loading()
}

// SavedLocations returns the saved keys in order.
func (o *Orchestrator) SavedLocations() []string {
	return o.locations.List()
}

func (o *Orchestrator) notify(level Level, msg string) {
	if o.notifier != nil {
		o.notifier.Notify(level, msg)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
