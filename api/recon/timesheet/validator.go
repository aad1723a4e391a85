package timesheet

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"CatalystPaySaas/api/constants"
)

var ErrInvalidTimezone = errors.New(constants.ErrInvalidTimezone)

// WorkSession is one user-entered tutoring session: date and start time in
// the submitter's timezone, duration in hours, and the activity covered.
type WorkSession struct {
	Date     string          `json:"date"` // 02-01-2006
	Time     string          `json:"time"` // 15:04:05
	Hours    decimal.Decimal `json:"hours"`
	Activity string          `json:"activity"`
}

// Result is the reconciliation verdict for one session. Informational only:
// a NoMatch never blocks the submission, it is surfaced for manual review.
type Result struct {
	Session WorkSession `json:"session"`
	Status  string      `json:"status"`
	Event   *Event      `json:"event,omitempty"`
}

// ValidateSessions matches each submitted session against the calendar. The
// session's naive date+time is localized to tzName; each event interval is
// converted to the same zone; the session matches the first event whose
// inclusive [start, end] interval contains its timestamp.
func ValidateSessions(sessions []WorkSession, events []Event, tzName string) ([]Result, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tzName)
	}

	results := make([]Result, 0, len(sessions))
	for _, session := range sessions {
		stamp, err := time.ParseInLocation(
			constants.DateFormatUK+" "+constants.SessionTimeFormat,
			session.Date+" "+session.Time,
			loc,
		)
		if err != nil {
			results = append(results, Result{Session: session, Status: constants.ReconNoMatch})
			continue
		}

		matched := false
		for _, event := range events {
			start := event.Start.In(loc)
			end := event.End.In(loc)
			if !stamp.Before(start) && !stamp.After(end) {
				localized := event
				localized.Start = start
				localized.End = end
				results = append(results, Result{Session: session, Status: constants.ReconMatched, Event: &localized})
				matched = true
				break
			}
		}
		if !matched {
			results = append(results, Result{Session: session, Status: constants.ReconNoMatch})
		}
	}
	return results, nil
}
