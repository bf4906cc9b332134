package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minhokang/signal-backend-go/internal/database"
	"github.com/minhokang/signal-backend-go/internal/models"
)

// RecordRepository handles database operations for signal records
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func sessionExists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}, sessionID int64) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", sessionID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return count > 0, nil
}

// Append inserts one record for a session.
// Returns ErrSessionNotFound when the session no longer exists, e.g. deleted
// while a recording was in flight.
func (r *RecordRepository) Append(ctx context.Context, record models.SignalRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		exists, err := sessionExists(ctx, tx, record.SessionID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSessionNotFound
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (session_id, timestamp, latitude, longitude, rsrp, rsrq)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.SessionID, record.Timestamp, record.Latitude, record.Longitude, record.RSRP, record.RSRQ)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
		return nil
	})
}

// AppendBatch inserts records for a session in one transaction, preserving order
func (r *RecordRepository) AppendBatch(ctx context.Context, sessionID int64, records []models.SignalRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		exists, err := sessionExists(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSessionNotFound
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (session_id, timestamp, latitude, longitude, rsrp, rsrq)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			_, err := stmt.ExecContext(ctx,
				sessionID, record.Timestamp, record.Latitude, record.Longitude, record.RSRP, record.RSRQ)
			if err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
		return nil
	})
}

// ListBySession retrieves all records of a session ordered by capture time ascending
func (r *RecordRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.SignalRecord, error) {
	exists, err := sessionExists(ctx, r.db, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	query := `SELECT id, session_id, timestamp, latitude, longitude, rsrp, rsrq
		FROM records WHERE session_id = ?
		ORDER BY timestamp ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.SignalRecord
	for rows.Next() {
		var rec models.SignalRecord
		err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Timestamp, &rec.Latitude, &rec.Longitude, &rec.RSRP, &rec.RSRQ)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Count returns the number of records in a session
func (r *RecordRepository) Count(ctx context.Context, sessionID int64) (int64, error) {
	exists, err := sessionExists(ctx, r.db, sessionID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrSessionNotFound
	}

	var count int64
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
