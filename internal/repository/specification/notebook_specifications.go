package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySectionID struct {
	SectionID uuid.UUID
}

func (s BySectionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section_id = ?", s.SectionID)
}

// MatchingText matches the query as a case-insensitive substring of the
// name or content columns.
type MatchingText struct {
	Query string
}

func (s MatchingText) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR content ILIKE ?", pattern, pattern)
}
