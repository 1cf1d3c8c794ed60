package session

import (
	"sort"
)

// Trend labels on report totals. Placeholder signal: "positive" means the
// total is non-zero, nothing more. Callers should not read momentum into it.
const (
	TrendPositive = "positive"
	TrendStable   = "stable"
)

type Metric struct {
	Number int    `json:"number"`
	Trend  string `json:"trend"`
}

// NullableMetric reports mismatch-style figures that are currently not
// computed; Number stays null until reconciliation against authorized
// capacity is reinstated.
type NullableMetric struct {
	Number *int   `json:"number"`
	Trend  string `json:"trend"`
}

// HourlyEntry is one non-zero (hour, direction) bucket.
type HourlyEntry struct {
	StartTime string `json:"start_time"` // "HH:00"
	Status    string `json:"status"`     // "Loading" or "Unloading"
	Count     int    `json:"count"`
}

type ChunkDetail struct {
	ChunkID   string `json:"chunk_id"`
	Timestamp string `json:"timestamp"` // "HH:MM:SS"
	Operation string `json:"operation"`
	BagsCount int    `json:"bags_count"`
}

// SessionLog is the human-readable record for one session.
type SessionLog struct {
	SessionID           string        `json:"session_id"`
	VehicleNumber       string        `json:"vehicle_number"`
	Status              string        `json:"status"`
	AuthorizationStatus string        `json:"authorization_status"`
	Date                string        `json:"date"`
	StartTime           string        `json:"start_time"`
	EndTime             string        `json:"end_time"`
	DurationMinutes     int           `json:"duration_minutes"`
	AuthorizedBags      int           `json:"authorized_bags"`
	ActualBagsLoaded    int           `json:"actual_bags_loaded"`
	ActualBagsUnloaded  int           `json:"actual_bags_unloaded"`
	NetBags             int           `json:"net_bags"`
	TotalChunks         int           `json:"total_chunks"`
	ChunksDetail        []ChunkDetail `json:"chunks_detail"`
}

type Summary struct {
	HourlySummary     []HourlyEntry  `json:"hourly_summary"`
	TotalBagsLoaded   Metric         `json:"total_bags_loaded"`
	TotalBagsUnloaded Metric         `json:"total_bags_unloaded"`
	Mismatch          NullableMetric `json:"mismatch"`
	TotalSessions     int            `json:"total_vehicle_sessions"`
	Logs              []SessionLog   `json:"logs"`
}

// BuildSummary aggregates reconstructed sessions into the report summary:
// grand totals, the hourly breakdown, and per-session log records. Sessions
// are trusted to satisfy the reconstruction invariants; no re-validation
// happens here.
func BuildSummary(sessions []Session) Summary {
	totalLoaded := 0
	totalUnloaded := 0

	type hourCounts struct {
		loading   int
		unloading int
	}
	hourly := make(map[string]*hourCounts)

	for i := range sessions {
		s := &sessions[i]
		totalLoaded += s.TotalBagsLoaded
		totalUnloaded += s.TotalBagsUnloaded

		for _, c := range s.Chunks {
			hour := c.Time.Format("15") + ":00"
			hc, ok := hourly[hour]
			if !ok {
				hc = &hourCounts{}
				hourly[hour] = hc
			}
			switch c.Action {
			case ActionLoading:
				hc.loading += c.BagCount
			case ActionUnloading:
				hc.unloading += c.BagCount
			}
		}
	}

	hours := make([]string, 0, len(hourly))
	for hour := range hourly {
		hours = append(hours, hour)
	}
	sort.Strings(hours)

	var hourlyList []HourlyEntry
	for _, hour := range hours {
		hc := hourly[hour]
		if hc.loading > 0 {
			hourlyList = append(hourlyList, HourlyEntry{StartTime: hour, Status: "Loading", Count: hc.loading})
		}
		if hc.unloading > 0 {
			hourlyList = append(hourlyList, HourlyEntry{StartTime: hour, Status: "Unloading", Count: hc.unloading})
		}
	}

	logs := make([]SessionLog, 0, len(sessions))
	for i := range sessions {
		logs = append(logs, buildSessionLog(&sessions[i]))
	}

	return Summary{
		HourlySummary:     hourlyList,
		TotalBagsLoaded:   Metric{Number: totalLoaded, Trend: trend(totalLoaded)},
		TotalBagsUnloaded: Metric{Number: totalUnloaded, Trend: trend(totalUnloaded)},
		Mismatch:          NullableMetric{Trend: TrendStable},
		TotalSessions:     len(sessions),
		Logs:              logs,
	}
}

func buildSessionLog(s *Session) SessionLog {
	details := make([]ChunkDetail, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		details = append(details, ChunkDetail{
			ChunkID:   c.ChunkID,
			Timestamp: c.Time.Format("15:04:05"),
			Operation: c.Action,
			BagsCount: c.BagCount,
		})
	}

	return SessionLog{
		SessionID:           s.ID,
		VehicleNumber:       s.VehicleNumber,
		Status:              s.Status,
		AuthorizationStatus: s.Authorization,
		Date:                s.StartTime.Format("02-01-2006"),
		StartTime:           s.StartTime.Format("15:04"),
		EndTime:             s.EndTime.Format("15:04"),
		DurationMinutes:     int(s.EndTime.Sub(s.StartTime).Minutes()),
		AuthorizedBags:      s.AuthorizedBags,
		ActualBagsLoaded:    s.TotalBagsLoaded,
		ActualBagsUnloaded:  s.TotalBagsUnloaded,
		NetBags:             s.TotalBagsLoaded - s.TotalBagsUnloaded,
		TotalChunks:         len(s.Chunks),
		ChunksDetail:        details,
	}
}

func trend(total int) string {
	if total > 0 {
		return TrendPositive
	}
	return TrendStable
}
