package dto

// EmbedFileRecord mirrors the storage trigger payload for an uploaded file.
// Path is "{class_id}/{file_name}" inside the bucket.
type EmbedFileRecord struct {
	Path        string `json:"path" validate:"required"`
	Name        string `json:"name" validate:"required"`
	ClassId     string `json:"class_id" validate:"required"`
	ContentType string `json:"content_type"`
}

type EmbedFileRequest struct {
	Record EmbedFileRecord `json:"record" validate:"required"`
}

type EmbedFileResponse struct {
	Status string `json:"status"`
}

// PublishEmbedDocumentMessage travels over the ingestion bus from the HTTP
// handler to the embedding consumer.
type PublishEmbedDocumentMessage struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	ClassId     string `json:"class_id"`
	ContentType string `json:"content_type"`
}
