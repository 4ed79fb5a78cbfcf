package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type SectionResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeleteSectionResponse struct {
	Message          string `json:"message"`
	DeletedNotebooks int64  `json:"deletedNotebooks"`
}

type SectionStatsResponse struct {
	SectionId      uuid.UUID `json:"sectionId"`
	SectionName    string    `json:"sectionName"`
	TotalNotebooks int64     `json:"totalNotebooks"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
