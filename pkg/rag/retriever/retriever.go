package retriever

import (
	"context"
	"fmt"
	"log"

	"studyflow-be/internal/repository/contract"
	"studyflow-be/pkg/embedding"
)

// Config encapsulates retrieval parameters.
type Config struct {
	MatchCount int
	Threshold  float64
}

// DefaultConfig returns the retrieval defaults: five best chunks at cosine
// similarity 0.5 or better.
func DefaultConfig() Config {
	return Config{
		MatchCount: 5,
		Threshold:  0.5,
	}
}

// Document is one retrieved chunk ready for prompt assembly.
type Document struct {
	ID         string
	SourceName string
	Content    string
	Score      float64
}

// Retriever embeds a query and runs vector search scoped to one class.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	chunkRepository   contract.DocumentChunkRepository
	logger            *log.Logger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	chunkRepository contract.DocumentChunkRepository,
	logger *log.Logger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		chunkRepository:   chunkRepository,
		logger:            logger,
	}
}

// Retrieve returns the best-matching chunks for the query within classId.
// An embedding failure is fatal to the request; an empty result is not.
func (r *Retriever) Retrieve(ctx context.Context, query string, classId string, config Config) ([]Document, error) {
	embeddingRes, err := r.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scoredResults, err := r.chunkRepository.SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		config.MatchCount,
		classId,
		config.Threshold,
	)
	if err != nil {
		r.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	r.logger.Printf("[DEBUG] Retrieved %d documents for class %s", len(scoredResults), classId)

	documents := make([]Document, len(scoredResults))
	for i, res := range scoredResults {
		documents[i] = Document{
			ID:         res.Chunk.Id.String(),
			SourceName: res.Chunk.SourceName,
			Content:    res.Chunk.Content,
			Score:      res.Similarity,
		}
	}
	return documents, nil
}
