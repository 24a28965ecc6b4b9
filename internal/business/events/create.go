package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/google/uuid"
)

// CreateEvent stores a new event with all notifications unsent.
func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	y, m, d := info.Date.Date()

	event := &model.Event{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		EventCreate: model.EventCreate{
			UserID:        info.UserID,
			Title:         info.Title,
			Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Time:          info.Time,
			Notifications: info.Notifications,
		},
	}

	if err := s.eventsRepository.CreateEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}

	return event, nil
}
