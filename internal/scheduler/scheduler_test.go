package scheduler

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestClock_Tick(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	c := NewClock(loc, testLogger())
	c.now = func() time.Time { return time.Date(2024, 5, 1, 4, 5, 6, 0, time.UTC) }

	assert.Empty(t, c.Display())
	c.Tick()
	assert.Equal(t, "12:05:06", c.Display())
}

func TestClock_StartStop(t *testing.T) {
	c := NewClock(nil, testLogger())
	require.NoError(t, c.Start())
	defer c.Stop()

	assert.NotEmpty(t, c.Display())
	_, err := time.Parse(ClockLayout, c.Display())
	assert.NoError(t, err)
}
