package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/lock"
	"github.com/lshigami/dailyquest/internal/metrics"
	"github.com/lshigami/dailyquest/internal/missionday"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ArchiveService interface {
	// ArchiveStaleMissions archives every unfinished mission dated before
	// today and returns how many were saved.
	ArchiveStaleMissions(ctx context.Context) (int, error)
}

type archiveService struct {
	repo      repository.MissionRepository
	publisher event.Publisher
	locker    lock.Locker
	workers   int
	lockTTL   time.Duration
	now       func() time.Time
}

// NewArchiveService accepts a nil locker, in which case sweeps are not serialised across replicas.
func NewArchiveService(repo repository.MissionRepository, publisher event.Publisher, locker lock.Locker, cfg *config.Config) ArchiveService {
	workers := cfg.Mission.ArchiveWorkers
	if workers <= 0 {
		workers = 8
	}
	ttl := cfg.Mission.LockTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &archiveService{
		repo:      repo,
		publisher: publisher,
		locker:    locker,
		workers:   workers,
		lockTTL:   ttl,
		now:       time.Now,
	}
}

func (s *archiveService) ArchiveStaleMissions(ctx context.Context) (int, error) {
	started := time.Now()
	today := missionday.Of(s.now())

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "dailyquest:archive:"+today.String(), s.lockTTL)
		switch {
		case errors.Is(err, lock.ErrNotAcquired):
			log.Info().Str("today", today.String()).Msg("Archive sweep already running elsewhere, skipping")
			return 0, nil
		case err != nil:
			log.Warn().Err(err).Msg("Could not take archive lock, sweeping without it")
		default:
			defer func() {
				if err := release(context.Background()); err != nil {
					log.Warn().Err(err).Msg("Failed to release archive lock")
				}
			}()
		}
	}

	missions, err := s.repo.GetMissionsToArchive(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("listing missions to archive: %w", err)
	}
	if len(missions) == 0 {
		log.Info().Str("before", today.String()).Msg("No missions to archive")
		return 0, nil
	}

	var archived, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range missions {
		m := &missions[i]
		g.Go(func() error {
			m.Status = model.MissionArchived
			m.UpdatedAt = s.now().UTC()
			if err := s.repo.SaveMission(ctx, m); err != nil {
				failed.Add(1)
				log.Error().Err(err).Str("userID", m.UserID).Str("date", m.Date.String()).Msg("Failed to archive mission")
				return nil
			}
			archived.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	count := int(archived.Load())
	metrics.MissionsArchived.Add(float64(count))
	metrics.ArchiveFailures.Add(float64(failed.Load()))
	metrics.SweepDuration.Observe(time.Since(started).Seconds())
	log.Info().
		Int("archived", count).
		Int64("failed", failed.Load()).
		Str("before", today.String()).
		Msg("Archive sweep finished")

	if s.publisher != nil {
		err := s.publisher.PublishArchiveEvent(ctx, &event.ArchiveEvent{
			EventType: event.EventTypeMissionsArchived,
			Before:    today.String(),
			Archived:  count,
			Failed:    int(failed.Load()),
			Timestamp: time.Now().Unix(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to publish archive event")
		}
	}
	return count, nil
}
