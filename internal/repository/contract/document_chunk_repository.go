package contract

import (
	"context"

	"studyflow-be/internal/entity"
	"studyflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk pairs a chunk with its cosine similarity to a query.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySourcePath(ctx context.Context, classId string, sourcePath string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns chunks with similarity scores, filtered
	// by class and threshold, best match first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, classId string, threshold float64) ([]*ScoredDocumentChunk, error)
}
