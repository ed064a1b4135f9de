package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"unimart/internal/domain"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

var units = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    day,
	"week":   week,
	"month":  month,
	"year":   year,
}

// RecencyAge infers how old a listing is from its relative postedDate phrase.
//
// The result is an approximation, not a timestamp:
//   - "Just now" and "today" are 0
//   - "yesterday" is one day
//   - "N <unit>(s) ago" is N units, where unit is second, minute, hour, day, week,
//     month (30 days) or year (365 days); "a"/"an" count as 1
//
// Any other phrase reports ok=false.
func RecencyAge(postedDate string) (age time.Duration, ok bool) {
	p := strings.ToLower(strings.TrimSpace(postedDate))
	switch p {
	case strings.ToLower(domain.JustNow), "today":
		return 0, true
	case "yesterday":
		return day, true
	}
	fields := strings.Fields(p)
	if len(fields) != 3 || fields[2] != "ago" {
		return 0, false
	}
	var n int
	switch fields[0] {
	case "a", "an":
		n = 1
	default:
		v, err := strconv.Atoi(fields[0])
		if err != nil || v < 0 || v > 100000 {
			return 0, false
		}
		n = v
	}
	unit, found := units[strings.TrimSuffix(fields[1], "s")]
	if !found {
		return 0, false
	}
	return time.Duration(n) * unit, true
}

// recencyRank orders unparseable phrases after every parseable one.
func recencyRank(postedDate string) time.Duration {
	if age, ok := RecencyAge(postedDate); ok {
		return age
	}
	return math.MaxInt64
}
