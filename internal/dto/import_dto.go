package dto

const (
	ImportFormatCSV = "csv"
	ImportFormatICS = "ics"
)

type SecureImportRequest struct {
	// File is the base64-encoded upload.
	File        string `json:"file" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType"`
	Format      string `json:"format" validate:"required,oneof=csv ics"`
}

type ImportMetadata struct {
	Rows      int `json:"rows,omitempty"`
	Events    int `json:"events,omitempty"`
	SizeBytes int `json:"size_bytes"`
}

type SecureImportResponse struct {
	Success  bool           `json:"success"`
	Content  string         `json:"content,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Metadata ImportMetadata `json:"metadata"`
}
