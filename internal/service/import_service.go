package service

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/internal/security"
)

const (
	maxImportBytes = 5 * 1024 * 1024
	maxCSVRows     = 10000
	maxICSEvents   = 5000
)

// ErrImportRejected marks validation failures the client can fix; the
// controller maps it to a 400 instead of a generic 500.
var ErrImportRejected = errors.New("import rejected")

// ErrImportTooLarge is the size-cap rejection; the controller maps it to a
// 413. It still wraps ErrImportRejected so generic rejection handling holds.
var ErrImportTooLarge = fmt.Errorf("%w: file exceeds the 5MB limit", ErrImportRejected)

type IImportService interface {
	SecureImport(ctx context.Context, req *dto.SecureImportRequest) (*dto.SecureImportResponse, error)
}

type importService struct {
	logger logger.ILogger
}

func NewImportService(log logger.ILogger) IImportService {
	return &importService{logger: log}
}

// SecureImport validates an uploaded CSV or ICS file before the frontend
// turns it into tasks and events. The decoded content is returned untouched
// when it passes; validation failures name the first offending location.
func (s *importService) SecureImport(ctx context.Context, req *dto.SecureImportRequest) (*dto.SecureImportResponse, error) {
	data, err := base64.StdEncoding.DecodeString(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: file is not valid base64", ErrImportRejected)
	}

	if len(data) > maxImportBytes {
		return nil, ErrImportTooLarge
	}

	content := string(data)
	var warnings []string
	metadata := dto.ImportMetadata{SizeBytes: len(data)}

	switch req.Format {
	case dto.ImportFormatCSV:
		rows, rowWarnings, err := validateCSV(content)
		if err != nil {
			s.logger.Warn("Import", "CSV rejected", map[string]interface{}{
				"filename": req.Filename,
				"error":    err.Error(),
			})
			return nil, err
		}
		metadata.Rows = rows
		warnings = rowWarnings
	case dto.ImportFormatICS:
		events, err := validateICS(content)
		if err != nil {
			s.logger.Warn("Import", "ICS rejected", map[string]interface{}{
				"filename": req.Filename,
				"error":    err.Error(),
			})
			return nil, err
		}
		metadata.Events = events
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrImportRejected, req.Format)
	}

	s.logger.Info("Import", "File validated", map[string]interface{}{
		"filename": req.Filename,
		"format":   req.Format,
		"rows":     metadata.Rows,
		"events":   metadata.Events,
	})

	return &dto.SecureImportResponse{
		Success:  true,
		Content:  content,
		Warnings: warnings,
		Metadata: metadata,
	}, nil
}

// validateCSV parses the whole file, enforces the row cap and scans every
// cell for injection payloads. Cells starting with a formula trigger produce
// a warning; the frontend escapes them before any spreadsheet export.
func validateCSV(content string) (int, []string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: malformed CSV: %v", ErrImportRejected, err)
	}
	if len(records) == 0 {
		return 0, nil, fmt.Errorf("%w: CSV file is empty", ErrImportRejected)
	}

	dataRows := len(records) - 1 // first row is the header
	if dataRows > maxCSVRows {
		return 0, nil, fmt.Errorf("%w: CSV exceeds %d rows", ErrImportRejected, maxCSVRows)
	}

	var warnings []string
	for rowIdx, record := range records {
		for colIdx, cell := range record {
			if security.ContainsInjection(cell) {
				return 0, nil, fmt.Errorf("%w: row %d column %d contains a script injection payload", ErrImportRejected, rowIdx+1, colIdx+1)
			}
			if startsFormula(cell) {
				warnings = append(warnings, fmt.Sprintf("row %d column %d starts with a formula character", rowIdx+1, colIdx+1))
			}
		}
	}

	return dataRows, warnings, nil
}

func startsFormula(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return false
	}
	switch trimmed[0] {
	case '=', '+', '@':
		return true
	}
	return false
}

// validateICS scans the calendar line by line: event cap, a matching
// BEGIN/END structure and no injection payloads in any property value. A
// full RFC 5545 parse is left to the calendar library on the frontend.
func validateICS(content string) (int, error) {
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		return 0, fmt.Errorf("%w: not an ICS calendar", ErrImportRejected)
	}

	events := 0
	depth := 0
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "BEGIN:VEVENT") {
			events++
			depth++
			if events > maxICSEvents {
				return 0, fmt.Errorf("%w: ICS exceeds %d events", ErrImportRejected, maxICSEvents)
			}
			continue
		}
		if strings.HasPrefix(line, "END:VEVENT") {
			depth--
			if depth < 0 {
				return 0, fmt.Errorf("%w: unbalanced VEVENT at line %d", ErrImportRejected, i+1)
			}
			continue
		}

		if security.ContainsInjection(line) {
			return 0, fmt.Errorf("%w: line %d contains a script injection payload", ErrImportRejected, i+1)
		}
	}

	if depth != 0 {
		return 0, fmt.Errorf("%w: unbalanced VEVENT blocks", ErrImportRejected)
	}

	return events, nil
}
