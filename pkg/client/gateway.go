// Package client is the programmatic gateway to the API. It resolves a base
// address from an ordered candidate list, attaches the stored session token
// to every request, normalizes failures into typed errors, and can fall back
// to a local embedded store when no server is reachable.
package client

import (
	"context"

	"booknotion-be/internal/dto"

	"github.com/google/uuid"
)

// Gateway is the full API surface. It has two implementations: HTTP against
// a running server, and Offline against the embedded local store.
type Gateway interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context) (*dto.MeResponse, error)
	Refresh(ctx context.Context) (*dto.RefreshResponse, error)

	Sections(ctx context.Context) ([]*dto.SectionResponse, error)
	Section(ctx context.Context, id uuid.UUID) (*dto.SectionResponse, error)
	CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	RenameSection(ctx context.Context, id uuid.UUID, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error)
	DeleteSection(ctx context.Context, id uuid.UUID) (*dto.DeleteSectionResponse, error)
	SectionNotebooks(ctx context.Context, id uuid.UUID) ([]*dto.NotebookResponse, error)
	SectionStats(ctx context.Context, id uuid.UUID) (*dto.SectionStatsResponse, error)

	Notebooks(ctx context.Context, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error)
	Notebook(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error)
	CreateNotebook(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error)
	UpdateNotebook(ctx context.Context, id uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error)
	UpdateNotebookContent(ctx context.Context, id uuid.UUID, content string) (*dto.MessageResponse, error)
	DuplicateNotebook(ctx context.Context, id uuid.UUID, req *dto.DuplicateNotebookRequest) (*dto.DuplicateNotebookResponse, error)
	DeleteNotebook(ctx context.Context, id uuid.UUID) (*dto.MessageResponse, error)
	SearchNotebooks(ctx context.Context, query string, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error)
}
