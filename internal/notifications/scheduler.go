package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"go.uber.org/zap"
)

const (
	defaultInterval = time.Minute
	defaultSinkType = "notification"
)

type Config struct {
	Interval time.Duration
	Location *time.Location
	SinkType string
	// MarkSentOnSinkFailure sets the sent flag even if the sink append failed,
	// so a broken sink drops reminders instead of retrying them every tick.
	MarkSentOnSinkFailure bool
}

// Scheduler emits due reminders to the sink and marks them sent. A reminder
// is flagged right after it is emitted, so only a crash between the two steps
// can cause a duplicate.
type Scheduler struct {
	logger        *zap.SugaredLogger
	eventsService eventsService
	sink          logSink
	cfg           Config
	now           func() time.Time

	// serializes passes between ticks and on-demand triggers
	passMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
}

type eventsService interface {
	GetPendingEvents(ctx context.Context) ([]*model.Event, error)
	SetNotificationSent(ctx context.Context, id string, ch model.Channel) error
}

type logSink interface {
	Append(ctx context.Context, kind string, at time.Time, message string) error
}

func NewScheduler(
	logger *zap.SugaredLogger,
	cfg Config,
	eventsService eventsService,
	sink logSink,
) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.SinkType == "" {
		cfg.SinkType = defaultSinkType
	}

	return &Scheduler{
		logger:        logger,
		eventsService: eventsService,
		sink:          sink,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Start runs one pass immediately and then one per interval until ctx is
// done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Infow("notification scheduler started", "interval", s.cfg.Interval)

	// catch up on whatever became due while the process was down
	s.tick(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("notification scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Errorw("notification pass failed", "err", err)
	}
}

// RunOnce performs a single pass with the canonical due rules. Only a failure
// to query events is returned; per-event failures are logged and retried on
// the next pass.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	_, err := s.process(ctx, Evaluate)
	return err
}

// Pending performs a pass with the strict due rules and returns the
// reminders it fired.
func (s *Scheduler) Pending(ctx context.Context) ([]*model.Reminder, error) {
	return s.process(ctx, EvaluateStrict)
}

func (s *Scheduler) process(ctx context.Context, evaluate func(time.Time, *model.Event) []*model.Reminder) ([]*model.Reminder, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	now := s.now().In(s.cfg.Location)
	s.logger.Debugw("checking notifications", "now", now)

	events, err := s.eventsService.GetPendingEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pending events: %w", err)
	}

	fired := make([]*model.Reminder, 0)
	for _, e := range events {
		for _, r := range evaluate(now, e) {
			marked, err := s.fire(ctx, now, r)
			if err != nil {
				if errors.Is(err, model.ErrNoRecord) {
					s.logger.Debugw("event removed before notification was marked", "event_id", r.EventID, "channel", r.Channel)
				} else {
					s.logger.Errorw("failed to mark notification sent", "event_id", r.EventID, "channel", r.Channel, "err", err)
				}
				break
			}

			if marked {
				e.NotificationStatus.MarkSent(r.Channel)
				fired = append(fired, r)
			}
		}
	}

	if len(fired) > 0 {
		s.logger.Infow("notifications sent", "count", len(fired))
	}

	return fired, nil
}

// fire emits r and then persists its sent flag. It reports whether the flag
// was set.
func (s *Scheduler) fire(ctx context.Context, now time.Time, r *model.Reminder) (bool, error) {
	if err := s.sink.Append(ctx, s.cfg.SinkType, now, r.Message); err != nil {
		s.logger.Errorw("failed to write notification", "event_id", r.EventID, "channel", r.Channel, "err", err)
		if !s.cfg.MarkSentOnSinkFailure {
			return false, nil
		}
	}

	if err := s.eventsService.SetNotificationSent(ctx, r.EventID, r.Channel); err != nil {
		return false, err
	}

	return true, nil
}
