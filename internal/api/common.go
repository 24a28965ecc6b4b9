package api

import (
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

const dateFormat = "2006-01-02"

type notificationsDTO struct {
	DayBefore bool `json:"day_before"`
	DayOf     bool `json:"day_of"`
	AtTime    bool `json:"at_time"`
}

type notificationStatusResp struct {
	DayBeforeSent bool `json:"day_before_sent"`
	DayOfSent     bool `json:"day_of_sent"`
	AtTimeSent    bool `json:"at_time_sent"`
}

type eventResp struct {
	ID                 string                 `json:"id"`
	UserID             *int64                 `json:"user_id,omitempty"`
	Title              string                 `json:"title"`
	Date               string                 `json:"date"`
	Time               string                 `json:"time,omitempty"`
	Notifications      notificationsDTO       `json:"notifications"`
	NotificationStatus notificationStatusResp `json:"notification_status"`
	CreatedAt          time.Time              `json:"created_at"`
}

func mapToEventResp(e *model.Event) *eventResp {
	return &eventResp{
		ID:     e.ID,
		UserID: e.UserID,
		Title:  e.Title,
		Date:   e.Date.Format(dateFormat),
		Time:   e.Time,
		Notifications: notificationsDTO{
			DayBefore: e.Notifications.DayBefore,
			DayOf:     e.Notifications.DayOf,
			AtTime:    e.Notifications.AtTime,
		},
		NotificationStatus: notificationStatusResp{
			DayBeforeSent: e.NotificationStatus.DayBeforeSent,
			DayOfSent:     e.NotificationStatus.DayOfSent,
			AtTimeSent:    e.NotificationStatus.AtTimeSent,
		},
		CreatedAt: e.CreatedAt,
	}
}

type reminderResp struct {
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Channel string    `json:"channel"`
	Message string    `json:"message"`
	DueAt   time.Time `json:"due_at"`
}

func mapToReminderResp(r *model.Reminder) *reminderResp {
	return &reminderResp{
		EventID: r.EventID,
		Title:   r.Title,
		Channel: string(r.Channel),
		Message: r.Message,
		DueAt:   r.DueAt,
	}
}
