package specification

import "gorm.io/gorm"

// ByClassID scopes a query to one class/collection of documents.
type ByClassID struct {
	ClassID string
}

func (s ByClassID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_id = ?", s.ClassID)
}

// BySourcePath filters chunks originating from one uploaded file.
type BySourcePath struct {
	SourcePath string
}

func (s BySourcePath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_path = ?", s.SourcePath)
}
