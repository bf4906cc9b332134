package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/transfer"

	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);
CREATE TABLE records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    timestamp INTEGER NOT NULL,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    rsrp INTEGER NOT NULL,
    rsrq INTEGER NOT NULL
);
`

func newTestRepos(t *testing.T) (*repository.SessionRepository, *repository.RecordRepository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return repository.NewSessionRepository(db), repository.NewRecordRepository(db)
}

func seedSession(t *testing.T, sessions *repository.SessionRepository, records *repository.RecordRepository, name string, recs []models.SignalRecord) *models.Session {
	t.Helper()
	ctx := context.Background()

	session, err := sessions.Create(ctx, name)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	if len(recs) > 0 {
		if err := records.AppendBatch(ctx, session.ID, recs); err != nil {
			t.Fatalf("AppendBatch() error = %v", err)
		}
	}
	return session
}

func TestSessionService_Records_Annotated(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewSessionService(sessions, records)
	ctx := context.Background()

	session := seedSession(t, sessions, records, "walk", []models.SignalRecord{
		{Timestamp: 1000, Latitude: 37.5665, Longitude: 126.978, RSRP: -75, RSRQ: -2},
		{Timestamp: 2000, Latitude: 37.5666, Longitude: 126.9781, RSRP: -75, RSRQ: -13},
	})

	got, err := svc.Records(ctx, session.ID)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Records() returned %d records, want 2", len(got))
	}
	if got[0].RSRPLevel != "Excellent" || got[0].RSRQLevel != "Excellent" || got[0].Level != "Excellent" {
		t.Errorf("first record levels = %s/%s/%s", got[0].RSRPLevel, got[0].RSRQLevel, got[0].Level)
	}
	// Combined level takes the worse metric
	if got[1].Level != "Poor" {
		t.Errorf("second record combined level = %q, want %q", got[1].Level, "Poor")
	}
	if got[1].Color != "#FF6F00" {
		t.Errorf("second record color = %q, want %q", got[1].Color, "#FF6F00")
	}
}

func TestTransferService_ExportImport_RoundTrip(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewTransferService(sessions, records)
	ctx := context.Background()

	original := seedSession(t, sessions, records, "walk", []models.SignalRecord{
		{Timestamp: 1761481344000, Latitude: 37.5665, Longitude: 126.978, RSRP: -95, RSRQ: -10},
		{Timestamp: 1761481345000, Latitude: 37.5666, Longitude: 126.9781, RSRP: -101, RSRQ: -13},
	})

	var buf bytes.Buffer
	exported, err := svc.Export(ctx, original.ID, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if exported.Name != "walk" {
		t.Errorf("exported session name = %q", exported.Name)
	}

	imported, err := svc.Import(ctx, "walk (copy)", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if imported.RecordCount != 2 {
		t.Errorf("imported record count = %d, want 2", imported.RecordCount)
	}

	got, err := records.ListBySession(ctx, imported.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	orig, _ := records.ListBySession(ctx, original.ID)
	for i := range got {
		if got[i].Timestamp/1000 != orig[i].Timestamp/1000 {
			t.Errorf("record %d timestamp = %d, want %d to the second", i, got[i].Timestamp, orig[i].Timestamp)
		}
		if got[i].RSRP != orig[i].RSRP || got[i].RSRQ != orig[i].RSRQ {
			t.Errorf("record %d signal mismatch", i)
		}
	}
}

func TestTransferService_Import_RejectsWholeFile(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewTransferService(sessions, records)
	ctx := context.Background()

	input := transfer.Header + "\n" +
		"2025-10-26 12:22:24,37.5665,126.978,-95,-10\n" +
		"2025-10-26 12:22:25,37.5666,126.9781,-95\n"

	_, err := svc.Import(ctx, "broken", strings.NewReader(input))
	var malformed *transfer.MalformedLineError
	if !errors.As(err, &malformed) {
		t.Fatalf("Import() error = %v, want MalformedLineError", err)
	}

	// No session may be left behind
	list, err := sessions.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("found %d sessions after rejected import, want 0", len(list))
	}
}

func TestTransferService_Import_DuplicateName(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewTransferService(sessions, records)
	ctx := context.Background()

	seedSession(t, sessions, records, "walk", nil)

	input := transfer.Header + "\n2025-10-26 12:22:24,37.5665,126.978,-95,-10\n"
	if _, err := svc.Import(ctx, "walk", strings.NewReader(input)); !errors.Is(err, repository.ErrDuplicateName) {
		t.Errorf("Import() error = %v, want ErrDuplicateName", err)
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewAnalyticsService(sessions, records)
	ctx := context.Background()

	session := seedSession(t, sessions, records, "walk", []models.SignalRecord{
		{Timestamp: 1000, Latitude: 37.5665, Longitude: 126.9780, RSRP: -75, RSRQ: -2},
		{Timestamp: 2000, Latitude: 37.5700, Longitude: 126.9780, RSRP: -95, RSRQ: -10},
		{Timestamp: 3000, Latitude: 37.5700, Longitude: 126.9820, RSRP: -115, RSRQ: -17},
	})

	summary, err := svc.Summary(ctx, session.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.RecordCount != 3 {
		t.Errorf("record count = %d, want 3", summary.RecordCount)
	}
	if summary.StartTime != 1000 || summary.EndTime != 3000 {
		t.Errorf("time span = [%d, %d], want [1000, 3000]", summary.StartTime, summary.EndTime)
	}
	if summary.DistanceMeters < 500 || summary.DistanceMeters > 1500 {
		t.Errorf("distance = %v m, expected a few hundred meters", summary.DistanceMeters)
	}
	if math.Abs(summary.RSRP.Mean-(-95)) > 1e-9 {
		t.Errorf("rsrp mean = %v, want -95", summary.RSRP.Mean)
	}
	if summary.RSRP.Min != -115 || summary.RSRP.Max != -75 {
		t.Errorf("rsrp min/max = %v/%v", summary.RSRP.Min, summary.RSRP.Max)
	}
	// RSRP and RSRQ both decline monotonically here
	if summary.Correlation < 0.9 {
		t.Errorf("correlation = %v, want near 1", summary.Correlation)
	}
	if summary.Levels["Excellent"] != 1 || summary.Levels["Fair"] != 1 || summary.Levels["Very Poor"] != 1 {
		t.Errorf("level distribution = %v", summary.Levels)
	}
}

func TestAnalyticsService_Summary_EmptySession(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewAnalyticsService(sessions, records)
	ctx := context.Background()

	session := seedSession(t, sessions, records, "empty", nil)

	summary, err := svc.Summary(ctx, session.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.RecordCount != 0 || summary.DistanceMeters != 0 {
		t.Errorf("empty summary = %+v", summary)
	}

	if _, err := svc.Summary(ctx, 9999); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Errorf("Summary(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestAnalyticsService_Coverage(t *testing.T) {
	sessions, records := newTestRepos(t)
	svc := NewAnalyticsService(sessions, records)
	ctx := context.Background()

	// Two clusters far enough apart to land in different precision-5 cells
	session := seedSession(t, sessions, records, "walk", []models.SignalRecord{
		{Timestamp: 1000, Latitude: 37.5665, Longitude: 126.9780, RSRP: -90, RSRQ: -8},
		{Timestamp: 2000, Latitude: 37.5666, Longitude: 126.9781, RSRP: -100, RSRQ: -12},
		{Timestamp: 3000, Latitude: 37.6600, Longitude: 127.1000, RSRP: -115, RSRQ: -17},
	})

	grid, err := svc.Coverage(ctx, session.ID, 5)
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if grid.Precision != 5 {
		t.Errorf("precision = %d, want 5", grid.Precision)
	}
	if len(grid.Cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(grid.Cells))
	}

	var total int64
	for _, cell := range grid.Cells {
		total += cell.Samples
		if len(cell.Geohash) != 5 {
			t.Errorf("cell geohash %q length != 5", cell.Geohash)
		}
		if cell.Level == "" || cell.Color == "" {
			t.Errorf("cell %q missing level info", cell.Geohash)
		}
	}
	if total != 3 {
		t.Errorf("cell samples total = %d, want 3", total)
	}

	// Out-of-range precision falls back to the default
	grid, err = svc.Coverage(ctx, session.ID, 99)
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if grid.Precision != 7 {
		t.Errorf("fallback precision = %d, want 7", grid.Precision)
	}
}
