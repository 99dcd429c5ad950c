package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for upstream calls.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	geocodeRequests  *prometheus.CounterVec
	forecastRequests *prometheus.CounterVec
	notices          *prometheus.CounterVec
	cardsDisplayed   prometheus.Gauge
	savedLocations   prometheus.Gauge
}

// New registers the collectors with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors with registerer. Collectors
// already present are reused.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		geocodeRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "weathercards_geocode_requests_total",
			Help: "Geocoding requests by outcome",
		}, []string{"outcome"}),
		forecastRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "weathercards_forecast_requests_total",
			Help: "Current-conditions requests by outcome",
		}, []string{"outcome"}),
		notices: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "weathercards_notices_total",
			Help: "User-facing notices by level",
		}, []string{"level"}),
		cardsDisplayed: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "weathercards_cards_displayed",
			Help: "Number of cards currently on the board",
		}),
		savedLocations: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "weathercards_saved_locations",
			Help: "Number of saved locations",
		}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

// RecordGeocode counts a geocoding call. Nil receivers are ignored.
func (m *Metrics) RecordGeocode(outcome string) {
	if m == nil {
		return
	}
	m.geocodeRequests.WithLabelValues(outcome).Inc()
}

// RecordForecast counts a current-conditions call.
func (m *Metrics) RecordForecast(outcome string) {
	if m == nil {
		return
	}
	m.forecastRequests.WithLabelValues(outcome).Inc()
}

// RecordNotice counts a user-facing notice.
func (m *Metrics) RecordNotice(level string) {
	if m == nil {
		return
	}
	m.notices.WithLabelValues(level).Inc()
}

// SetCardsDisplayed sets the board size.
func (m *Metrics) SetCardsDisplayed(n int) {
	if m == nil {
		return
	}
	m.cardsDisplayed.Set(float64(n))
}

// SetSavedLocations sets the saved-set size.
func (m *Metrics) SetSavedLocations(n int) {
	if m == nil {
		return
	}
	m.savedLocations.Set(float64(n))
}
