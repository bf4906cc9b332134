package models

// MetricSummary holds aggregate statistics for one signal metric
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// SessionSummary aggregates a whole session for the summary endpoint
type SessionSummary struct {
	SessionID      int64            `json:"sessionId"`
	Name           string           `json:"name"`
	RecordCount    int64            `json:"recordCount"`
	StartTime      int64            `json:"startTime,omitempty"` // Unix ms of first record
	EndTime        int64            `json:"endTime,omitempty"`   // Unix ms of last record
	DistanceMeters float64          `json:"distanceMeters"`
	RSRP           MetricSummary    `json:"rsrp"`
	RSRQ           MetricSummary    `json:"rsrq"`
	Correlation    float64          `json:"rsrpRsrqCorrelation"`
	Levels         map[string]int64 `json:"levels"` // combined level label -> record count
}

// CoverageCell is one geohash bucket of a session's coverage grid
type CoverageCell struct {
	Geohash   string  `json:"geohash"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	Samples   int64   `json:"samples"`
	MeanRSRP  float64 `json:"meanRsrp"`
	MeanRSRQ  float64 `json:"meanRsrq"`
	Level     string  `json:"level"`
	Color     string  `json:"color"`
}

// CoverageGrid is the coverage endpoint response
type CoverageGrid struct {
	SessionID int64          `json:"sessionId"`
	Precision int            `json:"precision"`
	Cells     []CoverageCell `json:"cells"`
}
