package warehouse

// Read models for the warehouse inventory surface. Repositories map storage
// rows into these before anything else touches them.

type Warehouse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Capacity  *int     `json:"capacity,omitempty"`
}

type Camera struct {
	ID               int64    `json:"camera_id"`
	Name             string   `json:"camera_name"`
	WarehouseID      string   `json:"warehouse_id"`
	Status           string   `json:"status,omitempty"`
	StreamARN        string   `json:"stream_arn,omitempty"`
	S3BucketURL      string   `json:"s3_bucket_url,omitempty"`
	TranscriptBucket string   `json:"transcript_bucket,omitempty"`
	Region           string   `json:"region_name,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

type Worker struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile,omitempty"`
	Role        string `json:"role"`
	EPFID       string `json:"epf_id,omitempty"`
	WarehouseID string `json:"warehouse_id"`
}

type Vehicle struct {
	NumberPlate  string `json:"number_plate"`
	BagsCapacity string `json:"bags_capacity,omitempty"`
	Commodity    string `json:"commodity,omitempty"`
	Access       string `json:"vehicle_access,omitempty"`
}
