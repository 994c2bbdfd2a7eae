package embedding

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider decorates an EmbeddingProvider with an in-memory cache so
// repeated queries (follow-up questions about the same topic) skip the
// external call. Document embeddings are not cached; ingestion sees each
// chunk once.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider) *CachedProvider {
	// Default expiration of 1 hour, purge expired entries every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CachedProvider{
		inner: inner,
		cache: c,
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	if taskType != TaskRetrievalQuery {
		return p.inner.Generate(text, taskType)
	}

	key := fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
	if x, found := p.cache.Get(key); found {
		return x.(*EmbeddingResponse), nil
	}

	res, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, res, cache.DefaultExpiration)
	return res, nil
}
