package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoStub struct {
	created *model.Event
	sent    []model.Channel
	err     error
}

func (r *repoStub) CreateEvent(_ context.Context, _ database.Queryable, event *model.Event) error {
	r.created = event
	return r.err
}

func (r *repoStub) GetEventByID(context.Context, database.Queryable, string) (*model.Event, error) {
	return nil, r.err
}

func (r *repoStub) GetEvents(context.Context, database.Queryable, model.EventsFilter) ([]*model.Event, error) {
	return nil, r.err
}

func (r *repoStub) GetPendingEvents(context.Context, database.Queryable) ([]*model.Event, error) {
	return nil, r.err
}

func (r *repoStub) SetNotificationSent(_ context.Context, _ database.Queryable, _ string, ch model.Channel) error {
	r.sent = append(r.sent, ch)
	return r.err
}

func (r *repoStub) DeleteEvent(context.Context, database.Queryable, string) error {
	return r.err
}

func TestCreateEvent(t *testing.T) {
	repo := &repoStub{}
	s := NewService(nil, repo)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	loc := time.FixedZone("UTC+5", 5*60*60)
	event, err := s.CreateEvent(context.Background(), &model.EventCreate{
		Title:         "Physics exam",
		Date:          time.Date(2025, 6, 10, 3, 0, 0, 0, loc),
		Time:          "14:00",
		Notifications: model.Notifications{DayBefore: true, AtTime: true},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(event.ID)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), event.Date)
	assert.Equal(t, model.NotificationStatus{}, event.NotificationStatus)
	assert.Same(t, event, repo.created)
}

func TestServiceWrapsRepositoryErrors(t *testing.T) {
	repo := &repoStub{err: model.ErrNoRecord}
	s := NewService(nil, repo)

	err := s.SetNotificationSent(context.Background(), "e1", model.ChannelDayOf)
	assert.True(t, errors.Is(err, model.ErrNoRecord))
	assert.Equal(t, []model.Channel{model.ChannelDayOf}, repo.sent)

	_, err = s.GetEventByID(context.Background(), "e1")
	assert.True(t, errors.Is(err, model.ErrNoRecord))

	err = s.DeleteEvent(context.Background(), "e1")
	assert.True(t, errors.Is(err, model.ErrNoRecord))
}
