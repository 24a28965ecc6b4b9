package events

import (
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

type eventDTO struct {
	ID              string
	UserID          *int64
	Title           string
	Date            time.Time
	Time            *string
	NotifyDayBefore bool
	NotifyDayOf     bool
	NotifyAtTime    bool
	DayBeforeSent   bool
	DayOfSent       bool
	AtTimeSent      bool
	CreatedAt       time.Time
}

func mapToEvent(dto *eventDTO) *model.Event {
	var clock string
	if dto.Time != nil {
		clock = *dto.Time
	}

	return &model.Event{
		ID: dto.ID,
		NotificationStatus: model.NotificationStatus{
			DayBeforeSent: dto.DayBeforeSent,
			DayOfSent:     dto.DayOfSent,
			AtTimeSent:    dto.AtTimeSent,
		},
		CreatedAt: dto.CreatedAt,
		EventCreate: model.EventCreate{
			UserID: dto.UserID,
			Title:  dto.Title,
			Date:   dto.Date,
			Time:   clock,
			Notifications: model.Notifications{
				DayBefore: dto.NotifyDayBefore,
				DayOf:     dto.NotifyDayOf,
				AtTime:    dto.NotifyAtTime,
			},
		},
	}
}
