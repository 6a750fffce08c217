package trips

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseRange converts startDate/endDate query values into inclusive bounds.
// Date-only values cover the whole day in loc; values containing a T are
// taken as exact instants. Both empty yields an open filter.
func ParseRange(startValue, endValue string, loc *time.Location) (time.Time, time.Time, error) {
	startValue = strings.TrimSpace(startValue)
	endValue = strings.TrimSpace(endValue)
	if startValue == "" && endValue == "" {
		return time.Time{}, time.Time{}, nil
	}
	if startValue == "" || endValue == "" {
		return time.Time{}, time.Time{}, ErrRangeRequired
	}
	if loc == nil {
		loc = time.UTC
	}

	start, startExact, err := parseBound(startValue, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate: %v", ErrInvalidRange, err)
	}
	end, endExact, err := parseBound(endValue, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate: %v", ErrInvalidRange, err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate must be before or equal to endDate", ErrInvalidRange)
	}

	if !startExact {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	}
	if !endExact {
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	}
	return start, end, nil
}

func parseBound(value string, loc *time.Location) (time.Time, bool, error) {
	if !strings.Contains(value, "T") {
		parsed, err := time.ParseInLocation(dateLayout, value, loc)
		return parsed, false, err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", value, loc)
	if err != nil {
		return time.Time{}, true, err
	}
	return parsed, true, nil
}

func rangeKey(filter Filter) string {
	if filter.Start.IsZero() && filter.End.IsZero() {
		return "all"
	}
	return filter.Start.UTC().Format(time.RFC3339Nano) + "_" + filter.End.UTC().Format(time.RFC3339Nano)
}
