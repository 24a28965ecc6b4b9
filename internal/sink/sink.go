// Package sink stores emitted notifications as append-only entries, one entry
// per type and calendar day. Entries are identified as "<type>-<YYYY-MM-DD>".
package sink

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout = "2006-01-02"
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Sink is implemented by FileSink and RedisSink.
type Sink interface {
	Append(ctx context.Context, kind string, at time.Time, message string) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// EntryID names the entry holding lines of the given type written on the
// calendar day of at.
func EntryID(kind string, at time.Time) string {
	return fmt.Sprintf("%s-%s", kind, at.Format(dayLayout))
}

// ParseEntryID splits an entry identifier into its type and day. The day is
// midnight in loc.
func ParseEntryID(id string, loc *time.Location) (string, time.Time, bool) {
	if len(id) < len(dayLayout)+2 {
		return "", time.Time{}, false
	}

	sep := len(id) - len(dayLayout) - 1
	if id[sep] != '-' {
		return "", time.Time{}, false
	}

	day, err := time.ParseInLocation(dayLayout, id[sep+1:], loc)
	if err != nil {
		return "", time.Time{}, false
	}

	return id[:sep], day, true
}

// FormatLine renders "[<ISO timestamp>] <message>".
func FormatLine(at time.Time, message string) string {
	message = strings.ReplaceAll(message, "\n", " ")
	return fmt.Sprintf("[%s] %s", at.UTC().Format(isoLayout), message)
}
