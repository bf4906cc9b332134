package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/minhokang/signal-backend-go/internal/models"
)

// Header is the canonical CSV header for session files
const Header = "timestamp,latitude,longitude,rsrp,rsrq"

// timeLayout is the fixed timestamp format, interpreted in the local timezone
const timeLayout = "2006-01-02 15:04:05"

// Accepted value ranges for imported records
const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
	minRSRP      = -140
	maxRSRP      = -44
	minRSRQ      = -20
	maxRSRQ      = 0
)

var (
	// ErrInvalidHeader means the first line does not match the canonical header
	ErrInvalidHeader = errors.New("invalid CSV header, expected: " + Header)

	// ErrEmptyImport means the file contained a valid header but no records
	ErrEmptyImport = errors.New("no records to import")
)

// MalformedLineError reports a data line that failed parsing or validation.
// Line is the 1-based line number within the file, counting the header.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %s", e.Line, e.Text)
}

// Encode writes records as CSV. Records are written in the order given;
// the caller supplies them sorted by timestamp.
func Encode(w io.Writer, records []models.SignalRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		ts := time.UnixMilli(r.Timestamp).Format(timeLayout)
		line := fmt.Sprintf("%s,%v,%v,%d,%d\n", ts, r.Latitude, r.Longitude, r.RSRP, r.RSRQ)
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Decode parses a session CSV file. Decoding is all-or-nothing: the first
// malformed or out-of-range line rejects the whole file. Returned records
// have no session id assigned.
func Decode(r io.Reader) ([]models.SignalRecord, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return nil, ErrInvalidHeader
	}
	if !validHeader(scanner.Text()) {
		return nil, ErrInvalidHeader
	}

	var records []models.SignalRecord
	lineNumber := 1
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, ok := parseLine(line)
		if !ok {
			return nil, &MalformedLineError{Line: lineNumber, Text: line}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyImport
	}
	return records, nil
}

// validHeader compares case- and whitespace-insensitively
func validHeader(header string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(header, " ", ""))
	return normalized == Header
}

func parseLine(line string) (models.SignalRecord, bool) {
	var record models.SignalRecord

	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return record, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	ts, err := time.ParseInLocation(timeLayout, parts[0], time.Local)
	if err != nil {
		return record, false
	}
	latitude, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return record, false
	}
	longitude, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return record, false
	}
	rsrp, err := strconv.Atoi(parts[3])
	if err != nil {
		return record, false
	}
	rsrq, err := strconv.Atoi(parts[4])
	if err != nil {
		return record, false
	}

	if latitude < minLatitude || latitude > maxLatitude {
		return record, false
	}
	if longitude < minLongitude || longitude > maxLongitude {
		return record, false
	}
	if rsrp < minRSRP || rsrp > maxRSRP {
		return record, false
	}
	if rsrq < minRSRQ || rsrq > maxRSRQ {
		return record, false
	}

	record = models.SignalRecord{
		Timestamp: ts.UnixMilli(),
		Latitude:  latitude,
		Longitude: longitude,
		RSRP:      rsrp,
		RSRQ:      rsrq,
	}
	return record, true
}
