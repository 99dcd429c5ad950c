package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Storage keys, namespaced per application.
const (
	LocationsKey = "weatherAppLocationsOM"
	ThemeKey     = "weatherAppThemeOM"
)

// LocationStore is the ordered, duplicate-free set of saved locations.
// Every mutation is written back to the KV immediately.
type LocationStore struct {
	mu     sync.Mutex
	kv     KV
	keys   []string
	logger *logrus.Entry
}

// NewLocationStore creates an empty store over kv. Call Load to read the
// persisted set.
func NewLocationStore(kv KV, logger *logrus.Entry) *LocationStore {
	return &LocationStore{
		kv:     kv,
		logger: logger.WithField("component", "location-store"),
	}
}

// Load reads the persisted set. A missing or unparseable record degrades
// to an empty set and is never reported to the caller.
func (s *LocationStore) Load(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = nil

	raw, err := s.kv.Get(ctx, LocationsKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.WithError(err).Warn("failed to read saved locations, starting empty")
		}
		return nil
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		s.logger.WithError(err).Warn("saved locations are corrupt, starting empty")
		return nil
	}

	// Drop duplicates a hand-edited record might carry.
	for _, k := range keys {
		if !slices.Contains(s.keys, k) {
			s.keys = append(s.keys, k)
		}
	}
	return slices.Clone(s.keys)
}

// Save replaces the persisted set with keys.
func (s *LocationStore) Save(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(keys)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.keys = next
	return nil
}

// Add appends key and persists. It is a no-op when key is already present.
func (s *LocationStore) Add(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.keys, key) {
		return nil
	}
	next := append(slices.Clone(s.keys), key)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.keys = next
	s.logger.WithField("key", key).Info("saved location")
	return nil
}

// Remove filters key out and persists. It is a no-op when key is absent.
func (s *LocationStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.keys, key)
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.keys), idx, idx+1)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.keys = next
	s.logger.WithField("key", key).Info("removed saved location")
	return nil
}

// List returns a copy of the current set in insertion order.
func (s *LocationStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.keys)
}

// Contains reports whether key is saved.
func (s *LocationStore) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.keys, key)
}

// persist writes keys to the KV. Callers assign s.keys only on success so
// memory never runs ahead of storage.
func (s *LocationStore) persist(ctx context.Context, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to encode saved locations: %w", err)
	}
	if err := s.kv.Set(ctx, LocationsKey, string(b)); err != nil {
		return fmt.Errorf("failed to persist saved locations: %w", err)
	}
	return nil
}
