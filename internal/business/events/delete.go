package events

import (
	"context"
	"fmt"
)

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventsRepository.DeleteEvent(ctx, s.db, id); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	return nil
}
