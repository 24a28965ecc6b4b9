package events

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto), nil
}

func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		OrderBy("date", "time NULLS FIRST", "created_at")

	if filter.UserID != nil {
		qb = qb.Where(sq.Eq{"user_id": *filter.UserID})
	}

	return selectEvents(ctx, q, qb)
}

// GetPendingEvents returns events with at least one notification not sent yet.
func (*Repository) GetPendingEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error) {
	return selectEvents(ctx, q, pendingQuery())
}

func pendingQuery() sq.SelectBuilder {
	return baseQuery.
		Where(sq.Or{
			sq.Eq{"day_before_sent": false},
			sq.Eq{"day_of_sent": false},
			sq.Eq{"at_time_sent": false},
		}).
		OrderBy("date", "created_at")
}

func selectEvents(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Event, error) {
	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
