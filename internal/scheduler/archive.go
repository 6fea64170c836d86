// Package scheduler runs the nightly archival sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/internal/missionday"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/rs/zerolog/log"
)

// ArchiveScheduler fires ArchiveStaleMissions once a day at a fixed
// wall-clock time in the mission day's zone.
type ArchiveScheduler struct {
	archive service.ArchiveService
	hour    int
	minute  int
	now     func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// ParseClock parses an "HH:MM" 24-hour time of day.
func ParseClock(v string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", v, err)
	}
	return t.Hour(), t.Minute(), nil
}

func NewArchiveScheduler(archive service.ArchiveService, cfg *config.Config) (*ArchiveScheduler, error) {
	hour, minute, err := ParseClock(cfg.Mission.ArchiveAt)
	if err != nil {
		return nil, err
	}
	return &ArchiveScheduler{archive: archive, hour: hour, minute: minute, now: time.Now}, nil
}

// Next returns when the following sweep is due.
func (s *ArchiveScheduler) Next() time.Time {
	return missionday.NextAt(s.now(), s.hour, s.minute)
}

// RunOnce performs a single sweep immediately.
func (s *ArchiveScheduler) RunOnce(ctx context.Context) (int, error) {
	count, err := s.archive.ArchiveStaleMissions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Archive sweep failed")
		return 0, err
	}
	return count, nil
}

// Start launches the timer loop. Calling Start twice is a no-op.
func (s *ArchiveScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

func (s *ArchiveScheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		next := s.Next()
		log.Info().Time("next", next).Msg("Archive sweep scheduled")
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *ArchiveScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
