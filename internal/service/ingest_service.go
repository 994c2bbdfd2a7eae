package service

import (
	"context"
	"encoding/json"
	"strings"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/logger"
)

const (
	IngestStatusQueued      = "queued"
	IngestStatusUnsupported = "ok - unsupported file type"
)

type IIngestService interface {
	EmbedFile(ctx context.Context, req *dto.EmbedFileRequest) (*dto.EmbedFileResponse, error)
}

type ingestService struct {
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewIngestService(publisherService IPublisherService, log logger.ILogger) IIngestService {
	return &ingestService{
		publisherService: publisherService,
		logger:           log,
	}
}

// EmbedFile queues an uploaded file for chunking and embedding. Unsupported
// content types are acknowledged without queueing so the storage trigger does
// not retry them forever.
func (s *ingestService) EmbedFile(ctx context.Context, req *dto.EmbedFileRequest) (*dto.EmbedFileResponse, error) {
	record := req.Record

	if !isEmbeddable(record.ContentType, record.Name) {
		s.logger.Info("Ingestion", "Skipping unsupported file type", map[string]interface{}{
			"path":         record.Path,
			"content_type": record.ContentType,
		})
		return &dto.EmbedFileResponse{Status: IngestStatusUnsupported}, nil
	}

	payload := dto.PublishEmbedDocumentMessage{
		Path:        record.Path,
		Name:        record.Name,
		ClassId:     record.ClassId,
		ContentType: record.ContentType,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	s.logger.Info("Ingestion", "File queued for embedding", map[string]interface{}{
		"path":     record.Path,
		"class_id": record.ClassId,
	})
	return &dto.EmbedFileResponse{Status: IngestStatusQueued}, nil
}

// isEmbeddable accepts PDFs and anything plain-text. Binary formats the text
// extractor cannot read (images, spreadsheets, zips) are skipped.
func isEmbeddable(contentType, name string) bool {
	if contentType == "application/pdf" || strings.HasPrefix(contentType, "text/") {
		return true
	}
	// Storage triggers sometimes omit the content type; fall back to the
	// file extension.
	if contentType == "" {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".pdf") ||
			strings.HasSuffix(lower, ".txt") ||
			strings.HasSuffix(lower, ".md")
	}
	return false
}
