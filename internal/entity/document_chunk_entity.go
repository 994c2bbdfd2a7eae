package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of an uploaded course document.
type DocumentChunk struct {
	Id             uuid.UUID
	ClassId        string
	SourceName     string
	SourcePath     string
	Content        string
	EmbeddingValue []float32
	ChunkIndex     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
