package session

import (
	"time"
)

// Action values written by the bag-counting pipeline. Any other value still
// shows up in a session's chunk list but never feeds the totals.
const (
	ActionLoading   = "LOADING"
	ActionUnloading = "UNLOADING"
)

// FallbackVehicleNumber keys the synthetic session that absorbs bag activity
// observed on a day with no vehicle detections at all.
const FallbackVehicleNumber = "XXXX"

// Unknown is the default for vehicle metadata missing from the input.
const Unknown = "Unknown"

// TimestampLayout is the only accepted string form for log timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// VehicleObservation is one vehicle detection row, lifted out of storage
// representation right after the query. StartTime, BagsCapacity and the
// metadata fields stay raw strings: the detection pipeline writes dirty
// values and the normalizer owns all coercion.
type VehicleObservation struct {
	ID            int64
	VehicleNumber string
	StartTime     string
	Status        string
	VideoURL      string
	BagsCapacity  string
	Commodity     string
	Access        string
}

// BagObservation is one gunny-bag count reading from a video chunk.
type BagObservation struct {
	ID        int64
	Count     string
	Action    string
	StartTime string
	VideoURL  string
	VideoName string
}

type EventKind int

const (
	EventVehicle EventKind = iota
	EventBag
)

// Event is one entry of the merged chronology. Exactly one of Vehicle/Bag is
// set, matching Kind, and Time is always valid: rows that fail timestamp
// parsing never become events.
type Event struct {
	Kind    EventKind
	Time    time.Time
	Vehicle *VehicleObservation
	Bag     *BagObservation
}

// Chunk is one bag observation attributed to a session.
type Chunk struct {
	ChunkID  string
	VideoURL string
	Time     time.Time
	Action   string
	BagCount int
}

// Session is a reconstructed continuous visit of one vehicle. Instances are
// built by Reconstruct and read-only afterwards.
type Session struct {
	ID                string
	VehicleNumber     string
	StartTime         time.Time
	EndTime           time.Time
	Status            string
	Authorization     string
	AuthorizedBags    int
	Chunks            []Chunk
	TotalBagsLoaded   int
	TotalBagsUnloaded int
}
