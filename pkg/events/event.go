package events

import "time"

// Event is the contract for everything published to the external event bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DOCUMENT_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIndexedEvent signals that a file finished chunking and its
// embeddings are queryable.
func NewDocumentIndexedEvent(classId, sourcePath string, chunkCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INDEXED",
		Data: map[string]interface{}{
			"class_id":    classId,
			"source_path": sourcePath,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
