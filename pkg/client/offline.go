package client

import (
	"context"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/pkg/token"
	"booknotion-be/internal/repository/memory"
	"booknotion-be/internal/repository/sqlite"
	"booknotion-be/internal/service"

	"github.com/google/uuid"
)

var _ Gateway = (*Offline)(nil)

// Offline serves the full Gateway surface from an embedded local store,
// reusing the same service layer as the server so behavior matches online
// mode operation for operation.
type Offline struct {
	state           *StateStore
	tokenService    *token.Service
	authService     service.IAuthService
	sectionService  service.ISectionService
	notebookService service.INotebookService

	claims *token.Claims
}

// noopPublisher drops events; there is no consumer in offline mode.
type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) error {
	return nil
}

// NewOffline opens (creating if needed) the local database file and wires
// the service layer over it. The signing secret only guards the local state
// file; offline tokens never leave the machine.
func NewOffline(dataPath, secret string, state *StateStore) (*Offline, error) {
	db, err := sqlite.Open(dataPath)
	if err != nil {
		return nil, err
	}

	uowFactory := sqlite.NewRepositoryFactory(db)
	tokenService := token.NewService(secret, 0)
	publisher := noopPublisher{}

	o := &Offline{
		state:           state,
		tokenService:    tokenService,
		authService:     service.NewAuthService(uowFactory, tokenService, publisher),
		sectionService:  service.NewSectionService(uowFactory, memory.NewStatsCache()),
		notebookService: service.NewNotebookService(uowFactory, publisher),
	}

	// Restore the previous session when the persisted token still verifies.
	if state != nil && state.Token() != "" {
		if claims, err := tokenService.Verify(state.Token()); err == nil {
			o.claims = claims
		}
	}
	return o, nil
}

func (o *Offline) userId() (uuid.UUID, error) {
	if o.claims == nil {
		return uuid.Nil, apperror.Auth("Access token required")
	}
	return o.claims.UserId, nil
}

func (o *Offline) adoptSession(tokenStr string) {
	if claims, err := o.tokenService.Verify(tokenStr); err == nil {
		o.claims = claims
	}
	if o.state != nil && tokenStr != "" {
		_ = o.state.SetToken(tokenStr)
	}
}

func (o *Offline) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	res, err := o.authService.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	o.adoptSession(res.Token)
	return res, nil
}

func (o *Offline) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	res, err := o.authService.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	o.adoptSession(res.Token)
	return res, nil
}

func (o *Offline) Me(ctx context.Context) (*dto.MeResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.authService.Me(ctx, userId)
}

func (o *Offline) Refresh(ctx context.Context) (*dto.RefreshResponse, error) {
	if o.claims == nil {
		return nil, apperror.Auth("Access token required")
	}
	res, err := o.authService.Refresh(ctx, o.claims)
	if err != nil {
		return nil, err
	}
	o.adoptSession(res.Token)
	return res, nil
}

func (o *Offline) Sections(ctx context.Context) ([]*dto.SectionResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.GetAll(ctx, userId)
}

func (o *Offline) Section(ctx context.Context, id uuid.UUID) (*dto.SectionResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Show(ctx, userId, id)
}

func (o *Offline) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Create(ctx, userId, req)
}

func (o *Offline) RenameSection(ctx context.Context, id uuid.UUID, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Rename(ctx, userId, id, req)
}

func (o *Offline) DeleteSection(ctx context.Context, id uuid.UUID) (*dto.DeleteSectionResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Delete(ctx, userId, id)
}

func (o *Offline) SectionNotebooks(ctx context.Context, id uuid.UUID) ([]*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Notebooks(ctx, userId, id)
}

func (o *Offline) SectionStats(ctx context.Context, id uuid.UUID) (*dto.SectionStatsResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.sectionService.Stats(ctx, userId, id)
}

func (o *Offline) Notebooks(ctx context.Context, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.GetAll(ctx, userId, sectionId)
}

func (o *Offline) Notebook(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Show(ctx, userId, id)
}

func (o *Offline) CreateNotebook(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Create(ctx, userId, req)
}

func (o *Offline) UpdateNotebook(ctx context.Context, id uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Update(ctx, userId, id, req)
}

func (o *Offline) UpdateNotebookContent(ctx context.Context, id uuid.UUID, content string) (*dto.MessageResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.UpdateContent(ctx, userId, id, &dto.UpdateContentRequest{Content: &content})
}

func (o *Offline) DuplicateNotebook(ctx context.Context, id uuid.UUID, req *dto.DuplicateNotebookRequest) (*dto.DuplicateNotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Duplicate(ctx, userId, id, req)
}

func (o *Offline) DeleteNotebook(ctx context.Context, id uuid.UUID) (*dto.MessageResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Delete(ctx, userId, id)
}

func (o *Offline) SearchNotebooks(ctx context.Context, query string, sectionId *uuid.UUID) ([]*dto.NotebookResponse, error) {
	userId, err := o.userId()
	if err != nil {
		return nil, err
	}
	return o.notebookService.Search(ctx, userId, query, sectionId)
}
