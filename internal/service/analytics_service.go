package service

import (
	"context"
	"sort"

	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/signal"
	"github.com/minhokang/signal-backend-go/internal/spatial"
	"github.com/minhokang/signal-backend-go/internal/stats"
)

// AnalyticsService computes per-session summaries and coverage grids
type AnalyticsService struct {
	sessions *repository.SessionRepository
	records  *repository.RecordRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(sessions *repository.SessionRepository, records *repository.RecordRepository) *AnalyticsService {
	return &AnalyticsService{sessions: sessions, records: records}
}

// Summary aggregates one session: time span, track distance, RSRP/RSRQ
// statistics, their correlation, and the combined-level distribution
func (s *AnalyticsService) Summary(ctx context.Context, sessionID int64) (*models.SessionSummary, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := models.SessionSummary{
		SessionID:   session.ID,
		Name:        session.Name,
		RecordCount: int64(len(records)),
		Levels:      make(map[string]int64),
	}
	if len(records) == 0 {
		return &summary, nil
	}

	summary.StartTime = records[0].Timestamp
	summary.EndTime = records[len(records)-1].Timestamp

	rsrp := make([]float64, len(records))
	rsrq := make([]float64, len(records))
	points := make([][2]float64, len(records))
	for i, r := range records {
		rsrp[i] = float64(r.RSRP)
		rsrq[i] = float64(r.RSRQ)
		points[i] = [2]float64{r.Latitude, r.Longitude}
		summary.Levels[signal.Combined(r.RSRP, r.RSRQ).Label()]++
	}

	summary.DistanceMeters = spatial.TrackDistance(points)
	summary.RSRP = metricSummary(rsrp)
	summary.RSRQ = metricSummary(rsrq)
	summary.Correlation = stats.PearsonCorrelation(rsrp, rsrq)

	return &summary, nil
}

func metricSummary(values []float64) models.MetricSummary {
	return models.MetricSummary{
		Mean:   stats.Mean(values),
		Min:    stats.Min(values),
		Max:    stats.Max(values),
		StdDev: stats.StdDev(values),
		P50:    stats.Percentile(values, 50),
		P90:    stats.Percentile(values, 90),
	}
}

// Coverage buckets a session's records into geohash cells with mean signal
// values and a combined quality level per cell
func (s *AnalyticsService) Coverage(ctx context.Context, sessionID int64, precision int) (*models.CoverageGrid, error) {
	if precision < 1 || precision > 12 {
		precision = 7
	}

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	records, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		samples int64
		sumRSRP int64
		sumRSRQ int64
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		hash := spatial.EncodeGeohash(r.Latitude, r.Longitude, precision)
		b, ok := buckets[hash]
		if !ok {
			b = &bucket{}
			buckets[hash] = b
		}
		b.samples++
		b.sumRSRP += int64(r.RSRP)
		b.sumRSRQ += int64(r.RSRQ)
	}

	grid := models.CoverageGrid{
		SessionID: sessionID,
		Precision: precision,
		Cells:     make([]models.CoverageCell, 0, len(buckets)),
	}
	for hash, b := range buckets {
		lat, lon := spatial.DecodeGeohash(hash)
		meanRSRP := float64(b.sumRSRP) / float64(b.samples)
		meanRSRQ := float64(b.sumRSRQ) / float64(b.samples)
		level := signal.Combined(int(meanRSRP), int(meanRSRQ))

		grid.Cells = append(grid.Cells, models.CoverageCell{
			Geohash:   hash,
			CenterLat: lat,
			CenterLon: lon,
			Samples:   b.samples,
			MeanRSRP:  meanRSRP,
			MeanRSRQ:  meanRSRQ,
			Level:     level.Label(),
			Color:     level.Color(),
		})
	}

	// Stable output order for clients
	sort.Slice(grid.Cells, func(i, j int) bool {
		return grid.Cells[i].Geohash < grid.Cells[j].Geohash
	})

	return &grid, nil
}
