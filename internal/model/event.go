package model

import "time"

type Channel string

const (
	ChannelDayBefore Channel = "dayBefore"
	ChannelDayOf     Channel = "dayOf"
	ChannelAtTime    Channel = "atTime"
)

// Channels lists reminder channels in evaluation order.
var Channels = []Channel{ChannelDayBefore, ChannelDayOf, ChannelAtTime}

type Notifications struct {
	DayBefore bool
	DayOf     bool
	AtTime    bool
}

func (n Notifications) Enabled(ch Channel) bool {
	switch ch {
	case ChannelDayBefore:
		return n.DayBefore
	case ChannelDayOf:
		return n.DayOf
	case ChannelAtTime:
		return n.AtTime
	default:
		return false
	}
}

type NotificationStatus struct {
	DayBeforeSent bool
	DayOfSent     bool
	AtTimeSent    bool
}

func (s NotificationStatus) Sent(ch Channel) bool {
	switch ch {
	case ChannelDayBefore:
		return s.DayBeforeSent
	case ChannelDayOf:
		return s.DayOfSent
	case ChannelAtTime:
		return s.AtTimeSent
	default:
		return false
	}
}

// MarkSent only ever moves a flag from false to true.
func (s *NotificationStatus) MarkSent(ch Channel) {
	switch ch {
	case ChannelDayBefore:
		s.DayBeforeSent = true
	case ChannelDayOf:
		s.DayOfSent = true
	case ChannelAtTime:
		s.AtTimeSent = true
	}
}

func (s NotificationStatus) AllSent() bool {
	return s.DayBeforeSent && s.DayOfSent && s.AtTimeSent
}

type EventCreate struct {
	UserID        *int64
	Title         string
	Date          time.Time
	Time          string
	Notifications Notifications
}

type Event struct {
	ID                 string
	NotificationStatus NotificationStatus
	CreatedAt          time.Time
	EventCreate
}

type EventsFilter struct {
	UserID *int64
}
