package events

import (
	"context"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
	now              func() time.Time
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	GetPendingEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error)
	SetNotificationSent(ctx context.Context, q database.Queryable, id string, ch model.Channel) error
	DeleteEvent(ctx context.Context, q database.Queryable, id string) error
}

func NewService(db database.PGX, repo eventsRepository) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
		now:              time.Now,
	}
}
