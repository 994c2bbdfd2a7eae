package service

import (
	"context"
	"encoding/json"
	"testing"

	"studyflow-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestEmbedFileQueuesSupportedTypes(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewIngestService(publisher, nopLogger{})

	res, err := svc.EmbedFile(context.Background(), &dto.EmbedFileRequest{
		Record: dto.EmbedFileRecord{
			Path:        "cs101/syllabus.pdf",
			Name:        "syllabus.pdf",
			ClassId:     "cs101",
			ContentType: "application/pdf",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, IngestStatusQueued, res.Status)
	require.Len(t, publisher.payloads, 1)

	var msg dto.PublishEmbedDocumentMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, "cs101/syllabus.pdf", msg.Path)
	assert.Equal(t, "cs101", msg.ClassId)
}

func TestEmbedFileSkipsUnsupportedTypes(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewIngestService(publisher, nopLogger{})

	res, err := svc.EmbedFile(context.Background(), &dto.EmbedFileRequest{
		Record: dto.EmbedFileRecord{
			Path:        "cs101/photo.png",
			Name:        "photo.png",
			ClassId:     "cs101",
			ContentType: "image/png",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, IngestStatusUnsupported, res.Status)
	assert.Empty(t, publisher.payloads, "unsupported files must not be queued")
}

func TestIsEmbeddableFallsBackToExtension(t *testing.T) {
	assert.True(t, isEmbeddable("", "notes.txt"))
	assert.True(t, isEmbeddable("", "Syllabus.PDF"))
	assert.True(t, isEmbeddable("text/markdown", "readme.md"))
	assert.False(t, isEmbeddable("", "archive.zip"))
	assert.False(t, isEmbeddable("application/zip", "archive.zip"))
}
