package models

// SignalRecord represents one timestamped signal+location sample
type SignalRecord struct {
	ID        int64   `json:"id" db:"id"`
	SessionID int64   `json:"sessionId" db:"session_id"`
	Timestamp int64   `json:"timestamp" db:"timestamp"` // Unix timestamp in milliseconds
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	RSRP      int     `json:"rsrp" db:"rsrp"`
	RSRQ      int     `json:"rsrq" db:"rsrq"`
}

// AnnotatedRecord is a signal record with derived quality levels attached
type AnnotatedRecord struct {
	SignalRecord
	RSRPLevel string `json:"rsrpLevel"`
	RSRQLevel string `json:"rsrqLevel"`
	Level     string `json:"level"`
	Color     string `json:"color"`
}
