package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/transfer"
)

// TransferService handles CSV import and export of sessions
type TransferService struct {
	sessions *repository.SessionRepository
	records  *repository.RecordRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(sessions *repository.SessionRepository, records *repository.RecordRepository) *TransferService {
	return &TransferService{sessions: sessions, records: records}
}

// Export writes a session's records as CSV, ordered by capture time
func (s *TransferService) Export(ctx context.Context, sessionID int64, w io.Writer) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := transfer.Encode(w, records); err != nil {
		return nil, fmt.Errorf("failed to export session %d: %w", sessionID, err)
	}
	return session, nil
}

// Import decodes a CSV file and stores it as a new named session.
// Decoding is all-or-nothing; nothing is created when the file is rejected.
func (s *TransferService) Import(ctx context.Context, name string, r io.Reader) (*models.Session, error) {
	records, err := transfer.Decode(r)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.records.AppendBatch(ctx, session.ID, records); err != nil {
		// Roll the new session back so a storage failure leaves no half-import
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			log.Printf("Failed to clean up session %d after import failure: %v", session.ID, delErr)
		}
		return nil, err
	}

	session.RecordCount = int64(len(records))
	return session, nil
}
