package session

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Detect runs the full pass for one camera-day: normalize both raw
// collections, then reconstruct sessions. The dropped-row count from
// normalization is passed through for the caller to log.
func Detect(vehicles []VehicleObservation, bags []BagObservation) ([]Session, int) {
	if len(vehicles) == 0 && len(bags) == 0 {
		return nil, 0
	}
	events, dropped := Normalize(vehicles, bags)
	useFallback := len(vehicles) == 0 && len(bags) > 0
	return Reconstruct(events, useFallback, time.Now()), dropped
}

// Reconstruct walks the chronology once and builds one session per distinct
// vehicle number, attributing every bag event to the vehicle currently in
// view. useFallback must be true when the day has bag rows but no vehicle
// rows at all: the synthetic "XXXX" session then starts as the vehicle in
// view so that bag activity is not lost. Its start time is the first event's
// timestamp, or now when every bag row was dropped during normalization.
//
// The result is sorted ascending by session start time.
func Reconstruct(events []Event, useFallback bool, now time.Time) []Session {
	if len(events) == 0 && !useFallback {
		return nil
	}

	byVehicle := make(map[string]*Session)
	var order []string // first-seen order, keeps equal start times stable
	var current string

	if useFallback {
		start := now
		if len(events) > 0 {
			start = events[0].Time
		}
		s := &Session{
			ID:            uuid.NewString(),
			VehicleNumber: FallbackVehicleNumber,
			StartTime:     start,
			EndTime:       start,
			Status:        Unknown,
			Authorization: Unknown,
		}
		byVehicle[FallbackVehicleNumber] = s
		order = append(order, FallbackVehicleNumber)
		current = FallbackVehicleNumber
	}

	for i := range events {
		ev := &events[i]
		switch ev.Kind {
		case EventVehicle:
			num := ev.Vehicle.VehicleNumber
			current = num
			if s, ok := byVehicle[num]; ok {
				// A reappearing vehicle extends its existing session; its
				// later metadata is ignored. Whether a second visit should
				// open a fresh session is an open product question, so the
				// merge stays.
				s.EndTime = ev.Time
				continue
			}
			s := &Session{
				ID:             uuid.NewString(),
				VehicleNumber:  num,
				StartTime:      ev.Time,
				EndTime:        ev.Time,
				Status:         orUnknown(ev.Vehicle.Status),
				Authorization:  orUnknown(ev.Vehicle.Access),
				AuthorizedBags: CoerceInt(ev.Vehicle.BagsCapacity),
			}
			byVehicle[num] = s
			order = append(order, num)

		case EventBag:
			if current == "" {
				// Bag activity before any vehicle is in view is dropped.
				continue
			}
			s, ok := byVehicle[current]
			if !ok {
				continue
			}
			count := CoerceInt(ev.Bag.Count)
			s.Chunks = append(s.Chunks, Chunk{
				ChunkID:  strconv.FormatInt(ev.Bag.ID, 10),
				VideoURL: ev.Bag.VideoURL,
				Time:     ev.Time,
				Action:   ev.Bag.Action,
				BagCount: count,
			})
			s.EndTime = ev.Time
			switch ev.Bag.Action {
			case ActionLoading:
				s.TotalBagsLoaded += count
			case ActionUnloading:
				s.TotalBagsUnloaded += count
			}
		}
	}

	out := make([]Session, 0, len(order))
	for _, num := range order {
		out = append(out, *byVehicle[num])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func orUnknown(value string) string {
	if value == "" {
		return Unknown
	}
	return value
}
