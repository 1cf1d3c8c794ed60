package session

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalize merges vehicle and bag observations into one chronology sorted
// ascending by timestamp. The sort is stable, so rows with equal timestamps
// keep their input order (bag rows ahead of vehicle rows). Rows with a
// missing or unparseable timestamp are skipped; the second return value says
// how many, so callers can surface the loss.
func Normalize(vehicles []VehicleObservation, bags []BagObservation) ([]Event, int) {
	events := make([]Event, 0, len(vehicles)+len(bags))
	dropped := 0

	for i := range bags {
		ts, ok := parseTimestamp(bags[i].StartTime)
		if !ok {
			dropped++
			continue
		}
		events = append(events, Event{Kind: EventBag, Time: ts, Bag: &bags[i]})
	}

	for i := range vehicles {
		ts, ok := parseTimestamp(vehicles[i].StartTime)
		if !ok {
			dropped++
			continue
		}
		events = append(events, Event{Kind: EventVehicle, Time: ts, Vehicle: &vehicles[i]})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return events, dropped
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// CoerceInt turns dirty numeric input (empty, padded, non-numeric) into an
// int, defaulting to 0 on anything that does not parse.
func CoerceInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
