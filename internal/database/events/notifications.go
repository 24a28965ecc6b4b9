package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

// SetNotificationSent flips a single sent flag. Returns model.ErrNoRecord if
// the event no longer exists.
func (*Repository) SetNotificationSent(ctx context.Context, q database.Queryable, id string, ch model.Channel) error {
	qb, err := setSentQuery(id, ch)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func setSentQuery(id string, ch model.Channel) (sq.UpdateBuilder, error) {
	column, err := statusColumn(ch)
	if err != nil {
		return sq.UpdateBuilder{}, err
	}

	return database.PSQL.
		Update(database.EventsTable).
		Set(column, true).
		Where(sq.Eq{"id": id}), nil
}
