package weather

import (
	"context"
)

// Resolver turns a free-text place name into its best-matching place.
type Resolver interface {
	Resolve(ctx context.Context, name string) (PlaceRecord, error)
}

// ConditionsFetcher fetches current conditions for a coordinate pair and
// pairs them with the place that produced the coordinates.
type ConditionsFetcher interface {
	FetchConditions(ctx context.Context, lat, lon float64, place PlaceRecord) (Observation, error)
}
