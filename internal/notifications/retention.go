package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/sink"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultRetentionDays     = 30
	defaultRetentionSchedule = "@daily"
)

type RetentionConfig struct {
	Days     int
	Schedule string
	Location *time.Location
}

// Sweeper deletes sink entries whose date is older than the retention
// threshold.
type Sweeper struct {
	logger *zap.SugaredLogger
	sink   entrySink
	cfg    RetentionConfig
	now    func() time.Time
	cron   *cron.Cron
}

type entrySink interface {
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

func NewSweeper(logger *zap.SugaredLogger, cfg RetentionConfig, entries entrySink) *Sweeper {
	if cfg.Days <= 0 {
		cfg.Days = defaultRetentionDays
	}
	if cfg.Schedule == "" {
		cfg.Schedule = defaultRetentionSchedule
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Sweeper{
		logger: logger,
		sink:   entries,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Start sweeps once and schedules further sweeps. It does not block.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.cfg.Location))
	if _, err := c.AddFunc(s.cfg.Schedule, func() { s.Sweep(ctx, s.now()) }); err != nil {
		return fmt.Errorf("schedule retention sweep %q: %w", s.cfg.Schedule, err)
	}

	s.Sweep(ctx, s.now())

	s.cron = c
	c.Start()
	s.logger.Infow("retention sweep scheduled", "schedule", s.cfg.Schedule, "days", s.cfg.Days)

	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
}

// Sweep deletes entries dated before today minus the retention days and
// returns how many were deleted. Entries without a date are left alone.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) int {
	ids, err := s.sink.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list sink entries", "err", err)
		return 0
	}

	cutoff := startOfDay(now.In(s.cfg.Location)).AddDate(0, 0, -s.cfg.Days)

	deleted := 0
	for _, id := range ids {
		_, day, ok := sink.ParseEntryID(id, s.cfg.Location)
		if !ok || !day.Before(cutoff) {
			continue
		}

		if err := s.sink.Delete(ctx, id); err != nil {
			s.logger.Errorw("failed to delete sink entry", "entry", id, "err", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Infow("old sink entries deleted", "count", deleted, "cutoff", cutoff)
	}

	return deleted
}
