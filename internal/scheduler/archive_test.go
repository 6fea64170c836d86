package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingArchive struct {
	calls atomic.Int32
}

func (c *countingArchive) ArchiveStaleMissions(context.Context) (int, error) {
	c.calls.Add(1)
	return 3, nil
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("00:05")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 5, m)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestNextIsInMissionZone(t *testing.T) {
	s, err := NewArchiveScheduler(&countingArchive{}, &config.Config{Mission: config.Mission{ArchiveAt: "00:05"}})
	require.NoError(t, err)

	// 2024-01-15 10:00 in UTC+7
	s.now = func() time.Time { return time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC) }
	assert.Equal(t, time.Date(2024, 1, 15, 17, 5, 0, 0, time.UTC), s.Next().UTC())
}

func TestRunOnceAndStop(t *testing.T) {
	archive := &countingArchive{}
	s, err := NewArchiveScheduler(archive, &config.Config{Mission: config.Mission{ArchiveAt: "03:00"}})
	require.NoError(t, err)

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	assert.Equal(t, int32(1), archive.calls.Load())
}

func TestNewArchiveSchedulerRejectsBadClock(t *testing.T) {
	_, err := NewArchiveScheduler(&countingArchive{}, &config.Config{Mission: config.Mission{ArchiveAt: "noon"}})
	assert.Error(t, err)
}
