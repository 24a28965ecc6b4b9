package events

import (
	"fmt"

	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id::text AS id",
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
	From(database.EventsTable)

var statusColumns = map[model.Channel]string{
	model.ChannelDayBefore: "day_before_sent",
	model.ChannelDayOf:     "day_of_sent",
	model.ChannelAtTime:    "at_time_sent",
}

func statusColumn(ch model.Channel) (string, error) {
	column, ok := statusColumns[ch]
	if !ok {
		return "", fmt.Errorf("unknown channel %q", ch)
	}

	return column, nil
}
