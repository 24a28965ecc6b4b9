package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	var clock *string
	if event.Time != "" {
		clock = &event.Time
	}

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"id",
			"user_id",
			"title",
			"date",
			"time",
			"notify_day_before",
			"notify_day_of",
			"notify_at_time",
			"day_before_sent",
			"day_of_sent",
			"at_time_sent",
			"created_at",
		).
		Values(
			event.ID,
			event.UserID,
			event.Title,
			event.Date,
			clock,
			event.Notifications.DayBefore,
			event.Notifications.DayOf,
			event.Notifications.AtTime,
			event.NotificationStatus.DayBeforeSent,
			event.NotificationStatus.DayOfSent,
			event.NotificationStatus.AtTimeSent,
			event.CreatedAt,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
