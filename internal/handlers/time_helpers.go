package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/trainer-scheduler/internal/timezone"
)

// --------------------------------------------------
// Dates in the caller's timezone
// --------------------------------------------------

func parseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

func parseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
}

// location rejects an unknown zone instead of booking it as UTC.
func location(name string) (*time.Location, error) {
	if name != "" && !timezone.IsValid(name) {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	return timezone.Location(name), nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	loc, err := location(c.Query("timezone"))
	if err != nil {
		return nil, err
	}
	t, err := parseDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// parseWeekdays accepts English names, three letter abbreviations or 0-6
// with 0 being Sunday.
func parseWeekdays(in []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(in))
	for _, raw := range in {
		key := strings.ToLower(strings.TrimSpace(raw))
		if wd, ok := weekdayNames[key]; ok {
			out = append(out, wd)
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("unknown weekday %q", raw)
		}
		out = append(out, time.Weekday(n))
	}
	return out, nil
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(n), nil
}

func parseUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("invalid %s", key)
	}
	v := uint(n)
	return &v, nil
}
