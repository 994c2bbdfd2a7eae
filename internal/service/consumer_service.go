package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"studyflow-be/internal/dto"
	"studyflow-be/internal/entity"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/internal/repository/contract"
	"studyflow-be/pkg/embedding"
	"studyflow-be/pkg/events"
	pktNats "studyflow-be/pkg/nats"
	"studyflow-be/pkg/storage"
	"studyflow-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	storageClient     *storage.Client
	chunkRepository   contract.DocumentChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	storageClient *storage.Client,
	chunkRepository contract.DocumentChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		storageClient:     storageClient,
		chunkRepository:   chunkRepository,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Ingestion", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("Ingestion", "Processing document", map[string]interface{}{
		"path":     payload.Path,
		"class_id": payload.ClassId,
	})

	data, contentType, err := cs.storageClient.Download(ctx, payload.Path)
	if err != nil {
		cs.logger.Error("Ingestion", "Failed to download file", map[string]interface{}{
			"path":  payload.Path,
			"error": err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if payload.ContentType == "" {
		payload.ContentType = contentType
	}

	content, err := extractText(data, payload.ContentType, payload.Name)
	if err != nil {
		cs.logger.Error("Ingestion", "Failed to extract text", map[string]interface{}{
			"path":  payload.Path,
			"error": err.Error(),
		})
		msg.Ack() // A corrupt file will not get better on retry
		return
	}
	if strings.TrimSpace(content) == "" {
		cs.logger.Warn("Ingestion", "File contained no extractable text", map[string]interface{}{"path": payload.Path})
		msg.Ack()
		return
	}

	chunks := utils.SplitText(content, utils.DefaultChunkSize, utils.DefaultChunkOverlap)
	cs.logger.Info("Ingestion", "Content split into chunks", map[string]interface{}{
		"path":   payload.Path,
		"chunks": len(chunks),
	})

	newChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			cs.logger.Error("Ingestion", "Failed to generate embedding", map[string]interface{}{
				"path":  payload.Path,
				"chunk": i,
				"error": err.Error(),
			})
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:             uuid.New(),
			ClassId:        payload.ClassId,
			SourceName:     payload.Name,
			SourcePath:     payload.Path,
			Content:        chunk,
			EmbeddingValue: res.Embedding.Values,
			ChunkIndex:     i,
			Metadata: map[string]interface{}{
				"content_type": payload.ContentType,
			},
			CreatedAt: time.Now(),
		})
	}

	// Re-ingesting a file replaces its chunks rather than stacking duplicates.
	if err := cs.chunkRepository.DeleteBySourcePath(ctx, payload.ClassId, payload.Path); err != nil {
		cs.logger.Error("Ingestion", "Failed to delete old chunks", map[string]interface{}{
			"path":  payload.Path,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	if err := cs.chunkRepository.CreateBulk(ctx, newChunks); err != nil {
		cs.logger.Error("Ingestion", "Failed to create chunks", map[string]interface{}{
			"path":  payload.Path,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewDocumentIndexedEvent(payload.ClassId, payload.Path, len(newChunks))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			// Indexing succeeded; a lost event is not worth a reprocess.
			cs.logger.Warn("Ingestion", "Failed to publish indexed event", map[string]interface{}{
				"path":  payload.Path,
				"error": err.Error(),
			})
		}
	}

	cs.logger.Info("Ingestion", "Document indexed", map[string]interface{}{
		"path":   payload.Path,
		"chunks": len(newChunks),
	})
	msg.Ack()
}

// extractText pulls plain text out of a downloaded file. PDFs go through the
// PDF text extractor; everything else is treated as UTF-8 text.
func extractText(data []byte, contentType, name string) (string, error) {
	isPdf := contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(name), ".pdf")
	if !isPdf {
		return string(data), nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", err
	}
	return sb.String(), nil
}
