package recorder

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/signal"
	"github.com/minhokang/signal-backend-go/internal/stream"
)

var (
	// ErrAlreadyRecording means a recording session is already active
	ErrAlreadyRecording = errors.New("recording already in progress")

	// ErrNotRecording means stop was requested with no active session
	ErrNotRecording = errors.New("no recording in progress")
)

// Status is a snapshot of the recorder for the status endpoint
type Status struct {
	Recording   bool                  `json:"recording"`
	SessionID   int64                 `json:"sessionId,omitempty"`
	SessionName string                `json:"sessionName,omitempty"`
	RecordCount int64                 `json:"recordCount"`
	LastFix     *stream.LocationFix   `json:"lastFix,omitempty"`
	LastSignal  *stream.SignalReading `json:"lastSignal,omitempty"`
	Level       string                `json:"level,omitempty"`
}

// Recorder consumes the acquisition streams on a single goroutine and
// appends a record for every location fix while a session is active.
// Each fix is paired with the most recent signal reading.
type Recorder struct {
	sessions *repository.SessionRepository
	records  *repository.RecordRepository
	bus      *stream.Bus

	mu         sync.Mutex
	session    *models.Session
	count      int64
	lastFix    *stream.LocationFix
	lastSignal *stream.SignalReading
}

// New creates a recorder; call Run to start consuming samples
func New(sessions *repository.SessionRepository, records *repository.RecordRepository, bus *stream.Bus) *Recorder {
	return &Recorder{
		sessions: sessions,
		records:  records,
		bus:      bus,
	}
}

// Run consumes both streams until the context is cancelled. Appends happen
// on this goroutine, so records keep capture order.
func (r *Recorder) Run(ctx context.Context) {
	locations := r.bus.Subscribe(stream.TopicLocation)
	signals := r.bus.Subscribe(stream.TopicSignal)
	defer r.bus.Unsubscribe(locations, stream.TopicLocation)
	defer r.bus.Unsubscribe(signals, stream.TopicSignal)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-signals:
			if !ok {
				return
			}
			if reading, ok := msg.(stream.SignalReading); ok {
				r.handleSignal(reading)
			}
		case msg, ok := <-locations:
			if !ok {
				return
			}
			if fix, ok := msg.(stream.LocationFix); ok {
				r.handleFix(ctx, fix)
			}
		}
	}
}

func (r *Recorder) handleSignal(reading stream.SignalReading) {
	r.mu.Lock()
	r.lastSignal = &reading
	r.mu.Unlock()
}

func (r *Recorder) handleFix(ctx context.Context, fix stream.LocationFix) {
	r.mu.Lock()
	r.lastFix = &fix
	session := r.session
	reading := r.lastSignal
	r.mu.Unlock()

	// Not recording, or no signal reading arrived yet
	if session == nil || reading == nil {
		return
	}

	record := models.SignalRecord{
		SessionID: session.ID,
		Timestamp: fix.Timestamp,
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		RSRP:      reading.RSRP,
		RSRQ:      reading.RSRQ,
	}

	err := r.records.Append(ctx, record)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		// Session deleted mid-recording; drop the record and carry on
		return
	case err != nil:
		log.Printf("Failed to append record: %v", err)
		return
	}

	r.mu.Lock()
	if r.session != nil && r.session.ID == session.ID {
		r.count++
	}
	r.mu.Unlock()
}

// Start creates a new session and begins recording into it
func (r *Recorder) Start(ctx context.Context, name string) (*models.Session, error) {
	r.mu.Lock()
	if r.session != nil {
		r.mu.Unlock()
		return nil, ErrAlreadyRecording
	}
	r.mu.Unlock()

	session, err := r.sessions.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.session = session
	r.count = 0
	r.mu.Unlock()

	log.Printf("Recording started: %s", name)
	return session, nil
}

// Stop ends the active recording. An append already in flight on the
// consumer goroutine completes; no new appends are issued after this.
func (r *Recorder) Stop() (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil, ErrNotRecording
	}

	session := r.session
	r.session = nil
	log.Printf("Recording stopped: %s", session.Name)
	return session, nil
}

// Status returns a snapshot of the recorder state
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := Status{
		RecordCount: r.count,
		LastFix:     r.lastFix,
		LastSignal:  r.lastSignal,
	}
	if r.session != nil {
		status.Recording = true
		status.SessionID = r.session.ID
		status.SessionName = r.session.Name
	}
	if r.lastSignal != nil {
		status.Level = signal.Combined(r.lastSignal.RSRP, r.lastSignal.RSRQ).Label()
	}
	return status
}
