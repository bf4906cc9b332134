package service

import (
	"context"

	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/signal"
)

// SessionService handles business logic for sessions and their records
type SessionService struct {
	sessions *repository.SessionRepository
	records  *repository.RecordRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessions *repository.SessionRepository, records *repository.RecordRepository) *SessionService {
	return &SessionService{sessions: sessions, records: records}
}

// Create creates a new named session
func (s *SessionService) Create(ctx context.Context, name string) (*models.Session, error) {
	return s.sessions.Create(ctx, name)
}

// Rename changes a session's display name
func (s *SessionService) Rename(ctx context.Context, id int64, name string) error {
	return s.sessions.Rename(ctx, id, name)
}

// Delete removes a session and all of its records
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	return s.sessions.Delete(ctx, id)
}

// Get retrieves a single session
func (s *SessionService) Get(ctx context.Context, id int64) (*models.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// List retrieves all sessions, newest first
func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	return s.sessions.List(ctx)
}

// Records retrieves a session's records with quality levels attached
func (s *SessionService) Records(ctx context.Context, sessionID int64) ([]models.AnnotatedRecord, error) {
	records, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	annotated := make([]models.AnnotatedRecord, 0, len(records))
	for _, r := range records {
		combined := signal.Combined(r.RSRP, r.RSRQ)
		annotated = append(annotated, models.AnnotatedRecord{
			SignalRecord: r,
			RSRPLevel:    signal.ClassifyRSRP(r.RSRP).Label(),
			RSRQLevel:    signal.ClassifyRSRQ(r.RSRQ).Label(),
			Level:        combined.Label(),
			Color:        combined.Color(),
		})
	}
	return annotated, nil
}
