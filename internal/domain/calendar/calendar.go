// Package calendar groups matches by the day they are played.
package calendar

import (
	"slices"
	"strings"
	"time"

	"github.com/okian/pitchside/internal/domain/model"
)

const dayLayout = "2006-01-02"

// parse accepts RFC 3339 with or without fractional seconds.
func parse(date string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateKey returns the YYYY-MM-DD day of date in the offset the timestamp
// carries. Unparseable input falls back to the text before the first 'T'.
func DateKey(date string) string {
	if t, ok := parse(date); ok {
		return t.Format(dayLayout)
	}
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// Group partitions matches by DateKey. Groups appear in the order their
// day is first seen; matches keep their input order within a group.
func Group(matches []model.Match) []model.MatchGroup {
	groups := make([]model.MatchGroup, 0)
	index := make(map[string]int)
	for _, m := range matches {
		key := DateKey(m.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.MatchGroup{DateKey: key})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}
	return groups
}

// Chronological returns a copy of groups ordered by day. Keys that share a
// value keep their relative order.
func Chronological(groups []model.MatchGroup) []model.MatchGroup {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b model.MatchGroup) int {
		return strings.Compare(a.DateKey, b.DateKey)
	})
	return out
}

// Label renders the day of date as "Friday 3 Jan 2025". The raw day key
// is returned when date cannot be parsed.
func Label(date string) string {
	t, ok := parse(date)
	if !ok {
		return DateKey(date)
	}
	return t.Format("Monday 2 Jan 2006")
}

// Kickoff renders the time of day of date as "HH:MM", or "" when date
// cannot be parsed.
func Kickoff(date string) string {
	t, ok := parse(date)
	if !ok {
		return ""
	}
	return t.Format("15:04")
}
