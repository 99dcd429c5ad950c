package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/store"
)

// Theme is the visual theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var validate = validator.New()

// Validate reports whether t is a known theme.
func (t Theme) Validate() error {
	if err := validate.Var(string(t), "required,oneof=light dark"); err != nil {
		return fmt.Errorf("invalid theme %q", t)
	}
	return nil
}

// ThemeService persists the theme preference in the KV.
type ThemeService struct {
	mu      sync.RWMutex
	kv      store.KV
	current Theme
	logger  *logrus.Entry
}

func NewThemeService(kv store.KV, logger *logrus.Entry) *ThemeService {
	return &ThemeService{
		kv:      kv,
		current: ThemeLight,
		logger:  logger.WithField("component", "theme"),
	}
}

// Load applies the last-used theme, defaulting to light.
func (s *ThemeService) Load(ctx context.Context) Theme {
	t := ThemeLight
	raw, err := s.kv.Get(ctx, store.ThemeKey)
	switch {
	case err == nil && Theme(raw).Validate() == nil:
		t = Theme(raw)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		s.logger.WithError(err).Warn("failed to read theme, using default")
	}

	if err := s.Apply(ctx, t); err != nil {
		s.logger.WithError(err).Warn("failed to persist theme")
	}
	return t
}

// Apply switches to t and persists it.
func (s *ThemeService) Apply(ctx context.Context, t Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	s.logger.WithField("theme", t).Debug("applying theme")
	return s.kv.Set(ctx, store.ThemeKey, string(t))
}

// Toggle flips between light and dark.
func (s *ThemeService) Toggle(ctx context.Context) (Theme, error) {
	next := ThemeDark
	if s.Current() == ThemeDark {
		next = ThemeLight
	}
	if err := s.Apply(ctx, next); err != nil {
		return s.Current(), err
	}
	return next, nil
}

func (s *ThemeService) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
