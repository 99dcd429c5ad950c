package scheduler

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// ClockLayout is the display format of the clock.
const ClockLayout = "15:04:05"

// Clock keeps a display string of the current time, refreshed every second
// by a gocron job.
type Clock struct {
	scheduler *gocron.Scheduler
	location  *time.Location
	now       func() time.Time
	logger    *logrus.Entry

	mu      sync.RWMutex
	display string
}

// NewClock creates a Clock that formats times in loc (UTC when nil).
func NewClock(loc *time.Location, logger *logrus.Entry) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{
		scheduler: gocron.NewScheduler(loc),
		location:  loc,
		now:       time.Now,
		logger:    logger.WithField("component", "clock"),
	}
}

// Start renders the time once, then schedules the per-second tick.
func (c *Clock) Start() error {
	c.Tick()

	if _, err := c.scheduler.Every(1).Second().Do(c.Tick); err != nil {
		return err
	}

	c.scheduler.StartAsync()
	c.logger.Debug("clock started")
	return nil
}

// Tick refreshes the display string.
func (c *Clock) Tick() {
	s := c.now().In(c.location).Format(ClockLayout)

	c.mu.Lock()
	c.display = s
	c.mu.Unlock()
}

// Display returns the most recently rendered time.
func (c *Clock) Display() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.display
}

// Stop stops the scheduler and cancels any future ticks.
func (c *Clock) Stop() {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
}
