package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cards/internal/metrics"
)

// Level is the severity of a user-facing notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is an interruptive, user-facing message.
type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NoticeFeed keeps the most recent notices for the UI to poll and mirrors
// each one to the log.
type NoticeFeed struct {
	mu      sync.RWMutex
	notices []Notice
	max     int
	logger  *logrus.Entry
	metrics *metrics.Metrics
}

// NewNoticeFeed keeps at most max notices (unbounded when max <= 0).
func NewNoticeFeed(max int, m *metrics.Metrics, logger *logrus.Entry) *NoticeFeed {
	return &NoticeFeed{
		max:     max,
		logger:  logger.WithField("component", "notices"),
		metrics: m,
	}
}

func (f *NoticeFeed) Notify(level Level, message string) {
	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	f.mu.Lock()
	f.notices = append(f.notices, n)
	if f.max > 0 && len(f.notices) > f.max {
		f.notices = f.notices[len(f.notices)-f.max:]
	}
	f.mu.Unlock()

	f.metrics.RecordNotice(string(level))

	entry := f.logger.WithField("noticeId", n.ID)
	switch level {
	case LevelError:
		entry.Error(message)
	case LevelWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// List returns the retained notices, oldest first.
func (f *NoticeFeed) List() []Notice {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Notice, len(f.notices))
	copy(out, f.notices)
	return out
}
