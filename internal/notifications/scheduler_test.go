package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryEvents mimics the store: pending events are returned as copies and
// flags only change through SetNotificationSent.
type memoryEvents struct {
	mu       sync.Mutex
	order    []string
	events   map[string]*model.Event
	queryErr error
	setErr   map[string]error
	setCalls int
}

func newMemoryEvents(events ...*model.Event) *memoryEvents {
	m := &memoryEvents{events: map[string]*model.Event{}, setErr: map[string]error{}}
	for _, e := range events {
		m.order = append(m.order, e.ID)
		m.events[e.ID] = e
	}
	return m
}

func (m *memoryEvents) GetPendingEvents(context.Context) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queryErr != nil {
		return nil, m.queryErr
	}

	var res []*model.Event
	for _, id := range m.order {
		e, ok := m.events[id]
		if !ok || e.NotificationStatus.AllSent() {
			continue
		}
		cp := *e
		res = append(res, &cp)
	}
	return res, nil
}

func (m *memoryEvents) SetNotificationSent(_ context.Context, id string, ch model.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if err := m.setErr[id]; err != nil {
		return err
	}
	e, ok := m.events[id]
	if !ok {
		return model.ErrNoRecord
	}
	e.NotificationStatus.MarkSent(ch)
	return nil
}

func (m *memoryEvents) status(id string) model.NotificationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[id].NotificationStatus
}

type sinkLine struct {
	kind    string
	at      time.Time
	message string
}

type memorySink struct {
	mu    sync.Mutex
	lines []sinkLine
	err   error
}

func (s *memorySink) Append(_ context.Context, kind string, at time.Time, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, sinkLine{kind: kind, at: at, message: message})
	return nil
}

func (s *memorySink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]string, len(s.lines))
	for i, l := range s.lines {
		res[i] = l.message
	}
	return res
}

func newTestScheduler(events *memoryEvents, sink *memorySink, now time.Time) *Scheduler {
	s := NewScheduler(zap.NewNop().Sugar(), Config{
		Location:              time.UTC,
		MarkSentOnSinkFailure: true,
	}, events, sink)
	s.now = func() time.Time { return now }
	return s
}

func event(id, title string, d time.Time, clock string, n model.Notifications) *model.Event {
	return &model.Event{
		ID: id,
		EventCreate: model.EventCreate{
			Title:         title,
			Date:          d,
			Time:          clock,
			Notifications: n,
		},
	}
}

func TestRunOnceScenario(t *testing.T) {
	events := newMemoryEvents(allEnabled(date(2025, 1, 1), "09:00"))
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 1, 1, 9, 0, 30))

	require.NoError(t, s.RunOnce(context.Background()))

	assert.Equal(t, model.NotificationStatus{DayBeforeSent: true, DayOfSent: true, AtTimeSent: true}, events.status("e1"))
	assert.Equal(t, []string{
		"Reminder: 'Calculus exam' is scheduled for tomorrow.",
		"Reminder: 'Calculus exam' is scheduled for today.",
		"Reminder: 'Calculus exam' is starting now (09:00).",
	}, sink.messages())

	for _, l := range sink.lines {
		assert.Equal(t, "notification", l.kind)
		assert.Equal(t, at(2025, 1, 1, 9, 0, 30), l.at)
	}
}

func TestRunOnceAtMostOncePerChannel(t *testing.T) {
	events := newMemoryEvents(allEnabled(date(2025, 6, 10), "14:00"))
	sink := &memorySink{}
	now := at(2025, 6, 9, 8, 0, 0)
	s := newTestScheduler(events, sink, now)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	ticks := []time.Time{
		at(2025, 6, 9, 8, 0, 0),
		at(2025, 6, 9, 8, 1, 0),
		at(2025, 6, 10, 0, 0, 0),
		at(2025, 6, 10, 0, 1, 0),
		at(2025, 6, 10, 14, 0, 0),
		at(2025, 6, 10, 14, 1, 0),
		at(2025, 6, 11, 9, 0, 0),
	}
	for _, tick := range ticks {
		now = tick
		require.NoError(t, s.RunOnce(ctx))
	}

	assert.Equal(t, []string{
		"Reminder: 'Calculus exam' is scheduled for tomorrow.",
		"Reminder: 'Calculus exam' is scheduled for today.",
		"Reminder: 'Calculus exam' is starting now (14:00).",
	}, sink.messages())
	assert.Equal(t, 3, events.setCalls)
}

func TestRunOnceIdempotent(t *testing.T) {
	events := newMemoryEvents(event("e1", "Lab report", date(2025, 6, 10), "", model.Notifications{DayOf: true}))
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))

	ctx := context.Background()
	require.NoError(t, s.RunOnce(ctx))
	require.NoError(t, s.RunOnce(ctx))

	assert.Len(t, sink.messages(), 1)
	assert.True(t, events.status("e1").DayOfSent)
}

func TestRunOnceContinuesAfterStoreFailure(t *testing.T) {
	events := newMemoryEvents(
		event("e1", "Broken", date(2025, 6, 10), "", model.Notifications{DayOf: true}),
		event("e2", "Healthy", date(2025, 6, 10), "", model.Notifications{DayOf: true}),
	)
	events.setErr["e1"] = errors.New("connection reset")
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))

	require.NoError(t, s.RunOnce(context.Background()))

	assert.False(t, events.status("e1").DayOfSent)
	assert.True(t, events.status("e2").DayOfSent)

	// the failed flag is retried on the next pass
	delete(events.setErr, "e1")
	require.NoError(t, s.RunOnce(context.Background()))
	assert.True(t, events.status("e1").DayOfSent)
}

func TestRunOnceToleratesDeletedEvent(t *testing.T) {
	events := newMemoryEvents(
		event("gone", "Deleted", date(2025, 6, 10), "", model.Notifications{DayOf: true}),
		event("e2", "Kept", date(2025, 6, 10), "", model.Notifications{DayOf: true}),
	)
	events.setErr["gone"] = model.ErrNoRecord
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))

	require.NoError(t, s.RunOnce(context.Background()))
	assert.True(t, events.status("e2").DayOfSent)
}

func TestRunOnceQueryFailure(t *testing.T) {
	events := newMemoryEvents()
	events.queryErr = errors.New("db down")
	s := newTestScheduler(events, &memorySink{}, at(2025, 6, 10, 9, 0, 0))

	err := s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRunOnceSinkFailurePolicy(t *testing.T) {
	tests := []struct {
		name     string
		markSent bool
	}{
		{name: "mark sent anyway", markSent: true},
		{name: "retry next pass", markSent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := newMemoryEvents(event("e1", "Quiz", date(2025, 6, 10), "", model.Notifications{DayOf: true}))
			sink := &memorySink{err: errors.New("disk full")}
			s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))
			s.cfg.MarkSentOnSinkFailure = tt.markSent

			require.NoError(t, s.RunOnce(context.Background()))
			assert.Equal(t, tt.markSent, events.status("e1").DayOfSent)

			sink.err = nil
			require.NoError(t, s.RunOnce(context.Background()))
			if tt.markSent {
				assert.Empty(t, sink.messages())
			} else {
				assert.Len(t, sink.messages(), 1)
			}
			assert.True(t, events.status("e1").DayOfSent)
		})
	}
}

func TestRunOnceSkipsMalformedTime(t *testing.T) {
	events := newMemoryEvents(
		event("bad", "Bad time", date(2025, 6, 10), "25:99", model.Notifications{AtTime: true, DayOf: true}),
		event("empty", "No time", date(2025, 6, 10), "", model.Notifications{AtTime: true}),
		event("ok", "Good time", date(2025, 6, 10), "08:00", model.Notifications{AtTime: true}),
	)
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))

	require.NoError(t, s.RunOnce(context.Background()))

	assert.Equal(t, []string{
		"Reminder: 'Bad time' is scheduled for today.",
		"Reminder: 'Good time' is starting now (08:00).",
	}, sink.messages())
	assert.False(t, events.status("bad").AtTimeSent)
	assert.False(t, events.status("empty").AtTimeSent)
}

func TestPendingUsesStrictRules(t *testing.T) {
	events := newMemoryEvents(
		event("started", "Started", date(2025, 6, 10), "08:00", model.Notifications{DayBefore: true, AtTime: true}),
		event("upcoming", "Upcoming", date(2025, 6, 10), "10:00", model.Notifications{DayBefore: true}),
	)
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))

	reminders, err := s.Pending(context.Background())
	require.NoError(t, err)

	require.Len(t, reminders, 1)
	assert.Equal(t, "upcoming", reminders[0].EventID)
	assert.Equal(t, model.ChannelDayBefore, reminders[0].Channel)
	assert.True(t, events.status("upcoming").DayBeforeSent)
	assert.False(t, events.status("started").DayBeforeSent)
	assert.False(t, events.status("started").AtTimeSent)

	reminders, err = s.Pending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	events := newMemoryEvents(event("e1", "Seminar", date(2025, 6, 10), "", model.Notifications{DayOf: true}))
	sink := &memorySink{}
	s := newTestScheduler(events, sink, at(2025, 6, 10, 9, 0, 0))
	s.cfg.Interval = time.Hour

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(sink.messages()) == 1
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		s.Stop()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestNewSchedulerDefaults(t *testing.T) {
	s := NewScheduler(zap.NewNop().Sugar(), Config{}, newMemoryEvents(), &memorySink{})

	assert.Equal(t, time.Minute, s.cfg.Interval)
	assert.Equal(t, "notification", s.cfg.SinkType)
	assert.Equal(t, time.Local, s.cfg.Location)
}
