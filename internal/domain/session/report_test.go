package session

import (
	"testing"
	"time"
)

func mkSession(vehicle string, start, end time.Time, chunks []Chunk) Session {
	s := Session{
		ID:            "s-" + vehicle,
		VehicleNumber: vehicle,
		StartTime:     start,
		EndTime:       end,
		Status:        "Active",
		Authorization: "authorized",
		Chunks:        chunks,
	}
	for _, c := range chunks {
		switch c.Action {
		case ActionLoading:
			s.TotalBagsLoaded += c.BagCount
		case ActionUnloading:
			s.TotalBagsUnloaded += c.BagCount
		}
	}
	return s
}

func TestBuildSummaryTotalsAndTrends(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		mkSession("AB1", day.Add(10*time.Hour), day.Add(11*time.Hour), []Chunk{
			{ChunkID: "1", Time: day.Add(10*time.Hour + 5*time.Minute), Action: ActionLoading, BagCount: 20},
			{ChunkID: "2", Time: day.Add(10*time.Hour + 30*time.Minute), Action: ActionUnloading, BagCount: 5},
		}),
		mkSession("CD2", day.Add(14*time.Hour), day.Add(14*time.Hour+30*time.Minute), []Chunk{
			{ChunkID: "3", Time: day.Add(14*time.Hour + 10*time.Minute), Action: ActionLoading, BagCount: 8},
		}),
	}

	sum := BuildSummary(sessions)

	if sum.TotalSessions != 2 {
		t.Errorf("total sessions = %d, want 2", sum.TotalSessions)
	}
	if sum.TotalBagsLoaded.Number != 28 || sum.TotalBagsLoaded.Trend != TrendPositive {
		t.Errorf("loaded = %+v, want 28/positive", sum.TotalBagsLoaded)
	}
	if sum.TotalBagsUnloaded.Number != 5 || sum.TotalBagsUnloaded.Trend != TrendPositive {
		t.Errorf("unloaded = %+v, want 5/positive", sum.TotalBagsUnloaded)
	}
	if sum.Mismatch.Number != nil || sum.Mismatch.Trend != TrendStable {
		t.Errorf("mismatch = %+v, want null/stable", sum.Mismatch)
	}
}

func TestBuildSummaryZeroTotalsAreStable(t *testing.T) {
	sum := BuildSummary(nil)
	if sum.TotalBagsLoaded.Trend != TrendStable || sum.TotalBagsUnloaded.Trend != TrendStable {
		t.Errorf("trends = %q/%q, want stable/stable", sum.TotalBagsLoaded.Trend, sum.TotalBagsUnloaded.Trend)
	}
	if sum.TotalSessions != 0 || len(sum.Logs) != 0 {
		t.Errorf("empty input produced sessions: %+v", sum)
	}
}

func TestBuildSummaryHourlyBuckets(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		mkSession("AB1", day.Add(9*time.Hour), day.Add(15*time.Hour), []Chunk{
			{ChunkID: "1", Time: day.Add(9*time.Hour + 5*time.Minute), Action: ActionLoading, BagCount: 10},
			{ChunkID: "2", Time: day.Add(9*time.Hour + 40*time.Minute), Action: ActionLoading, BagCount: 4},
			{ChunkID: "3", Time: day.Add(14*time.Hour + 10*time.Minute), Action: ActionUnloading, BagCount: 6},
		}),
	}

	sum := BuildSummary(sessions)

	want := []HourlyEntry{
		{StartTime: "09:00", Status: "Loading", Count: 14},
		{StartTime: "14:00", Status: "Unloading", Count: 6},
	}
	if len(sum.HourlySummary) != len(want) {
		t.Fatalf("hourly = %+v, want %+v", sum.HourlySummary, want)
	}
	for i, e := range want {
		if sum.HourlySummary[i] != e {
			t.Errorf("hourly[%d] = %+v, want %+v", i, sum.HourlySummary[i], e)
		}
	}
}

func TestBuildSummaryHourlyNeverZero(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		mkSession("AB1", day.Add(9*time.Hour), day.Add(10*time.Hour), []Chunk{
			{ChunkID: "1", Time: day.Add(9*time.Hour + 5*time.Minute), Action: "COUNTING", BagCount: 3},
		}),
	}

	sum := BuildSummary(sessions)
	for _, e := range sum.HourlySummary {
		if e.Count == 0 {
			t.Errorf("zero-count hourly entry emitted: %+v", e)
		}
	}
}

func TestBuildSessionLogFields(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(10*time.Minute + 45*time.Second)
	s := mkSession("KA01AB1234", start, end, []Chunk{
		{ChunkID: "7", Time: start.Add(5 * time.Minute), Action: ActionLoading, BagCount: 20},
		{ChunkID: "8", Time: start.Add(10 * time.Minute), Action: ActionUnloading, BagCount: 5},
	})
	s.AuthorizedBags = 30

	sum := BuildSummary([]Session{s})
	if len(sum.Logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(sum.Logs))
	}
	log := sum.Logs[0]

	if log.Date != "10-03-2025" {
		t.Errorf("date = %q, want 10-03-2025", log.Date)
	}
	if log.StartTime != "10:00" || log.EndTime != "10:10" {
		t.Errorf("times = %q-%q, want 10:00-10:10", log.StartTime, log.EndTime)
	}
	// 10m45s floors to 10.
	if log.DurationMinutes != 10 {
		t.Errorf("duration = %d, want 10", log.DurationMinutes)
	}
	if log.NetBags != 15 {
		t.Errorf("net = %d, want 15", log.NetBags)
	}
	if log.AuthorizedBags != 30 {
		t.Errorf("authorized = %d, want 30", log.AuthorizedBags)
	}
	if log.TotalChunks != 2 || len(log.ChunksDetail) != 2 {
		t.Errorf("chunks = %d/%d, want 2/2", log.TotalChunks, len(log.ChunksDetail))
	}
	if log.ChunksDetail[0].Timestamp != "10:05:00" {
		t.Errorf("chunk timestamp = %q, want 10:05:00", log.ChunksDetail[0].Timestamp)
	}
	if log.ChunksDetail[1].Operation != ActionUnloading || log.ChunksDetail[1].BagsCount != 5 {
		t.Errorf("chunk detail = %+v", log.ChunksDetail[1])
	}
}
