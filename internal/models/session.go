package models

// Session represents a named recording run
type Session struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	CreatedAt   int64  `json:"createdAt" db:"created_at"` // Unix timestamp in milliseconds
	RecordCount int64  `json:"recordCount"`
}

// CreateSessionRequest is the payload for creating a session
type CreateSessionRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameSessionRequest is the payload for renaming a session
type RenameSessionRequest struct {
	Name string `json:"name" binding:"required"`
}
