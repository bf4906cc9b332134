package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/minhokang/signal-backend-go/internal/database"
	"github.com/minhokang/signal-backend-go/internal/models"
)

var (
	// ErrDuplicateName means a session with the requested name already exists
	ErrDuplicateName = errors.New("session name already exists")

	// ErrSessionNotFound means the targeted session id does not exist
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository handles database operations for sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session with the current creation time.
// The name uniqueness check and the insert run in one transaction.
func (r *SessionRepository) Create(ctx context.Context, name string) (*models.Session, error) {
	session := models.Session{
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE name = ?", name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check session name: %w", err)
		}
		if exists > 0 {
			return ErrDuplicateName
		}

		result, err := tx.ExecContext(ctx,
			"INSERT INTO sessions (name, created_at) VALUES (?, ?)", session.Name, session.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		session.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get session id: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// Rename changes a session's name, keeping names unique
func (r *SessionRepository) Rename(ctx context.Context, id int64, newName string) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check session: %w", err)
		}
		if exists == 0 {
			return ErrSessionNotFound
		}

		var taken int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sessions WHERE name = ? AND id != ?", newName, id).Scan(&taken)
		if err != nil {
			return fmt.Errorf("failed to check session name: %w", err)
		}
		if taken > 0 {
			return ErrDuplicateName
		}

		if _, err := tx.ExecContext(ctx, "UPDATE sessions SET name = ? WHERE id = ?", newName, id); err != nil {
			return fmt.Errorf("failed to rename session: %w", err)
		}
		return nil
	})
}

// Delete removes a session; records are removed by the cascade
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetByID retrieves a single session by id
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	query := `SELECT s.id, s.name, s.created_at, COUNT(r.id)
		FROM sessions s
		LEFT JOIN records r ON r.session_id = s.id
		WHERE s.id = ?
		GROUP BY s.id`

	var s models.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.RecordCount)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// List retrieves all sessions, newest-created first, with record counts
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	query := `SELECT s.id, s.name, s.created_at, COUNT(r.id)
		FROM sessions s
		LEFT JOIN records r ON r.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}
