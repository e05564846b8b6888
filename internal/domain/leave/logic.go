package leave

import (
	"errors"
	"strings"
	"time"

	"ems/internal/platform/validation"
)

var (
	ErrInvalidRange   = errors.New("end date before start date")
	ErrAlreadyDecided = errors.New("leave request already decided")
)

const dateLayout = "2006-01-02"

// CalculateDays returns the inclusive calendar day count between start and
// end. Times of day and zones are ignored.
func CalculateDays(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// DaysBetween is CalculateDays over YYYY-MM-DD strings.
func DaysBetween(startDate, endDate string) (int, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return 0, err
	}
	return CalculateDays(start, end)
}

// Validate checks required fields and date order, and fills Days.
func (in *Input) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	days, err := DaysBetween(in.StartDate, in.EndDate)
	if err != nil {
		return validation.Check(false, "endDate", "must be on or after startDate")
	}
	in.Days = days
	return nil
}

// CanTransition reports whether a request in from may move to to.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Decided()
}

type Filter struct {
	Status Status
	Type   Type
}

func (f Filter) Match(r Request) bool {
	if f.Status != "" && f.Status != r.Status {
		return false
	}
	if f.Type != "" && f.Type != r.Type {
		return false
	}
	return true
}

func Apply(requests []Request, f Filter) []Request {
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
