// Package recurrence expands a weekly booking pattern into concrete
// session start instants.
package recurrence

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
)

// MaxOccurrences caps a single series at two years of weekly sessions.
const MaxOccurrences = 104

var ErrInvalidPattern = httperr.ErrBusiness(httperr.CodeInvalidPattern)

type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q", ErrInvalidPattern, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type Pattern struct {
	// StartDate only contributes its calendar date, read in Location.
	StartDate   time.Time
	Weekdays    []time.Weekday
	TimeOfDay   TimeOfDay
	Occurrences int
	// Location is a fixed offset supplied by the caller. Nil means the
	// location of StartDate.
	Location *time.Location
}

// Single is the one-occurrence pattern for a standalone booking at start.
func Single(start time.Time) Pattern {
	return Pattern{
		StartDate:   start,
		Weekdays:    []time.Weekday{start.Weekday()},
		TimeOfDay:   TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		Occurrences: 1,
		Location:    start.Location(),
	}
}

func (p Pattern) Validate() error {
	if len(p.Weekdays) == 0 {
		return fmt.Errorf("%w: weekday set is empty", ErrInvalidPattern)
	}
	for _, wd := range p.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidPattern, int(wd))
		}
	}
	if p.Occurrences < 1 || p.Occurrences > MaxOccurrences {
		return fmt.Errorf("%w: occurrence count must be between 1 and %d", ErrInvalidPattern, MaxOccurrences)
	}
	if p.TimeOfDay.Hour < 0 || p.TimeOfDay.Hour > 23 || p.TimeOfDay.Minute < 0 || p.TimeOfDay.Minute > 59 {
		return fmt.Errorf("%w: time of day %s", ErrInvalidPattern, p.TimeOfDay)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidPattern)
	}
	return nil
}

// ExpandOccurrences walks forward one calendar day at a time from the start
// date (inclusive) and returns exactly p.Occurrences instants, in order.
func ExpandOccurrences(p Pattern) ([]time.Time, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	loc := p.Location
	if loc == nil {
		loc = p.StartDate.Location()
	}

	var days [7]bool
	for _, wd := range p.Weekdays {
		days[wd] = true
	}

	start := p.StartDate.In(loc)
	y, m, d := start.Date()

	out := make([]time.Time, 0, p.Occurrences)
	for offset := 0; len(out) < p.Occurrences; offset++ {
		at := time.Date(y, m, d+offset, p.TimeOfDay.Hour, p.TimeOfDay.Minute, 0, 0, loc)
		if days[at.Weekday()] {
			out = append(out, at)
		}
	}

	return out, nil
}
