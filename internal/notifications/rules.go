package notifications

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

// dueFunc reports whether a channel of an event is due at now.
type dueFunc func(now time.Time, e *model.Event, ch model.Channel) bool

// IsDue is the canonical due-check: a channel is due once its moment has
// been reached and stays due until its sent flag is set. Day-level channels
// compare midnight-normalized days in the location of now.
func IsDue(now time.Time, e *model.Event, ch model.Channel) bool {
	if e == nil || e.Date.IsZero() {
		return false
	}
	if !e.Notifications.Enabled(ch) || e.NotificationStatus.Sent(ch) {
		return false
	}

	day := eventDay(e, now.Location())
	today := startOfDay(now)

	switch ch {
	case model.ChannelDayBefore:
		return !today.Before(day.AddDate(0, 0, -1))
	case model.ChannelDayOf:
		return !today.Before(day)
	case model.ChannelAtTime:
		at, ok := eventStart(e, now.Location())
		return ok && !now.Before(at)
	default:
		return false
	}
}

// IsDueStrict narrows IsDue for the pending-notifications query: dayBefore
// additionally requires the event to start strictly after now, atTime only
// fires within one minute after its moment.
func IsDueStrict(now time.Time, e *model.Event, ch model.Channel) bool {
	if !IsDue(now, e, ch) {
		return false
	}

	switch ch {
	case model.ChannelDayBefore:
		start, ok := eventStart(e, now.Location())
		if !ok {
			start = eventDay(e, now.Location())
		}
		return start.After(now)
	case model.ChannelAtTime:
		at, _ := eventStart(e, now.Location())
		return now.Before(at.Add(time.Minute))
	default:
		return true
	}
}

// Evaluate returns the reminders due for e at now in channel order.
func Evaluate(now time.Time, e *model.Event) []*model.Reminder {
	return evaluate(now, e, IsDue)
}

// EvaluateStrict is Evaluate with IsDueStrict.
func EvaluateStrict(now time.Time, e *model.Event) []*model.Reminder {
	return evaluate(now, e, IsDueStrict)
}

func evaluate(now time.Time, e *model.Event, due dueFunc) []*model.Reminder {
	var res []*model.Reminder
	for _, ch := range model.Channels {
		if !due(now, e, ch) {
			continue
		}

		res = append(res, &model.Reminder{
			EventID: e.ID,
			Title:   e.Title,
			Channel: ch,
			Message: reminderMessage(e, ch),
			DueAt:   dueAt(e, ch, now.Location()),
		})
	}

	return res
}

func dueAt(e *model.Event, ch model.Channel, loc *time.Location) time.Time {
	day := eventDay(e, loc)

	switch ch {
	case model.ChannelDayBefore:
		return day.AddDate(0, 0, -1)
	case model.ChannelAtTime:
		at, _ := eventStart(e, loc)
		return at
	default:
		return day
	}
}

func reminderMessage(e *model.Event, ch model.Channel) string {
	switch ch {
	case model.ChannelDayBefore:
		return fmt.Sprintf("Reminder: '%s' is scheduled for tomorrow.", e.Title)
	case model.ChannelDayOf:
		return fmt.Sprintf("Reminder: '%s' is scheduled for today.", e.Title)
	default:
		return fmt.Sprintf("Reminder: '%s' is starting now (%s).", e.Title, e.Time)
	}
}

// eventDay is midnight of the event's calendar date in loc. The stored date
// carries no meaningful time of day, only its year, month and day are used.
func eventDay(e *model.Event, loc *time.Location) time.Time {
	y, m, d := e.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func eventStart(e *model.Event, loc *time.Location) (time.Time, bool) {
	hour, minute, ok := parseClock(e.Time)
	if !ok {
		return time.Time{}, false
	}

	y, m, d := e.Date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseClock accepts "HH:MM" in 24-hour form only.
func parseClock(s string) (int, int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}

	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}
