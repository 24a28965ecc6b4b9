package model

import "time"

// Reminder is a due (event, channel) pair.
type Reminder struct {
	EventID string
	Title   string
	Channel Channel
	Message string
	DueAt   time.Time
}
