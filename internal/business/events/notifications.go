package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

func (s *Service) GetPendingEvents(ctx context.Context) ([]*model.Event, error) {
	events, err := s.eventsRepository.GetPendingEvents(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (s *Service) SetNotificationSent(ctx context.Context, id string, ch model.Channel) error {
	if err := s.eventsRepository.SetNotificationSent(ctx, s.db, id, ch); err != nil {
		return fmt.Errorf("eventsRepository.SetNotificationSent: %w", err)
	}

	return nil
}
