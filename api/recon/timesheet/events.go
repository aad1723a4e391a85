package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CatalystPaySaas/internal/graph"
)

// Event is a calendar event reduced to what reconciliation needs, with
// timezone-aware start and end.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location"`
}

// CalendarAPI is the slice of the Graph client the fetcher needs.
type CalendarAPI interface {
	ListEvents(ctx context.Context, email string, from, to time.Time) ([]graph.CalendarEvent, error)
}

// MonthWindow returns the bounds of the local calendar month containing now.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}

// graph dateTime strings arrive without an offset, qualified by a separate
// timezone name (UTC unless a preference header changes it).
var eventTimeLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseEventTime(edt graph.EventDateTime) (time.Time, error) {
	loc := time.UTC
	if edt.TimeZone != "" && !strings.EqualFold(edt.TimeZone, "UTC") {
		l, err := time.LoadLocation(edt.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("event timezone %q: %w", edt.TimeZone, err)
		}
		loc = l
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, edt.DateTime, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event time %q", edt.DateTime)
}

// MonthEvents fetches the user's events for the current local calendar month.
// Events whose start falls outside the month are dropped even if the feed
// returns them.
func MonthEvents(ctx context.Context, client CalendarAPI, email string, now time.Time) ([]Event, error) {
	from, to := MonthWindow(now)
	raw, err := client.ListEvents(ctx, email, from, to)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raw))
	for _, ev := range raw {
		start, err := parseEventTime(ev.Start)
		if err != nil {
			continue
		}
		end, err := parseEventTime(ev.End)
		if err != nil {
			continue
		}
		localStart := start.In(now.Location())
		if localStart.Year() != now.Year() || localStart.Month() != now.Month() {
			continue
		}
		title := ev.Subject
		if title == "" {
			title = "No Title"
		}
		location := ev.Location.DisplayName
		if location == "" {
			location = "No Location"
		}
		events = append(events, Event{
			ID:       ev.ID,
			Title:    title,
			Start:    start,
			End:      end,
			Location: location,
		})
	}
	return events, nil
}
