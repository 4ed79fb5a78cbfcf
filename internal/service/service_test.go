package service

import (
	"context"
	"errors"
	"testing"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/pkg/token"
	"booknotion-be/internal/repository/memory"
	"booknotion-be/internal/repository/sqlite"
	"booknotion-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	events []string
}

func (p *capturingPublisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) error {
	p.events = append(p.events, eventType)
	return nil
}

type testEnv struct {
	uowFactory unitofwork.RepositoryFactory
	tokens     *token.Service
	auth       IAuthService
	sections   ISectionService
	notebooks  INotebookService
	publisher  *capturingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uowFactory := sqlite.NewRepositoryFactory(db)
	tokens := token.NewService("test-secret", 0)
	publisher := &capturingPublisher{}
	statsCache := memory.NewStatsCache()

	return &testEnv{
		uowFactory: uowFactory,
		tokens:     tokens,
		auth:       NewAuthService(uowFactory, tokens, publisher),
		sections:   NewSectionService(uowFactory, statsCache),
		notebooks:  NewNotebookService(uowFactory, publisher),
		publisher:  publisher,
	}
}

func (e *testEnv) registerUser(t *testing.T, username, email string) uuid.UUID {
	t.Helper()
	res, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return res.User.Id
}

func appErr(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appError *apperror.AppError
	require.True(t, errors.As(err, &appError), "expected *apperror.AppError, got %v", err)
	return appError
}

func TestRegisterIssuesMatchingToken(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: "ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", res.Message)

	claims, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, claims.UserId)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@x.com", claims.Email)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "ana", "ana@x.com")

	_, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: "different",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestLoginErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "ana", "ana@x.com")

	_, err := env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUserNotFound, appErr(t, err).Code)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@x.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidPassword, appErr(t, err).Code)
	assert.True(t, errors.Is(err, apperror.ErrAuth))
}

func TestLoginSucceedsAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "ana", "ana@x.com")

	res, err := env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", res.Message)
	assert.NotEmpty(t, res.Token)
	assert.Contains(t, env.publisher.events, "user.login")
}

func TestSectionDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	section, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)

	var notebookIds []uuid.UUID
	for _, name := range []string{"Todo", "Done", "Ideas"} {
		nb, err := env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
			Name:      name,
			SectionId: &section.Id,
		})
		require.NoError(t, err)
		notebookIds = append(notebookIds, nb.Id)
	}

	res, err := env.sections.Delete(ctx, userId, section.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.DeletedNotebooks)

	for _, id := range notebookIds {
		_, err := env.notebooks.Show(ctx, userId, id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	}
	_, err = env.sections.Show(ctx, userId, section.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteMissingSectionIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	userId := env.registerUser(t, "ana", "ana@x.com")

	_, err := env.sections.Delete(context.Background(), userId, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userA := env.registerUser(t, "ana", "ana@x.com")
	userB := env.registerUser(t, "ben", "ben@x.com")

	section, err := env.sections.Create(ctx, userA, &dto.CreateSectionRequest{Name: "Private"})
	require.NoError(t, err)
	notebook, err := env.notebooks.Create(ctx, userA, &dto.CreateNotebookRequest{
		Name:      "Secret plans",
		SectionId: &section.Id,
		Content:   "<p>classified</p>",
	})
	require.NoError(t, err)

	// user B never sees user A's data, even with the right ids
	_, err = env.notebooks.Show(ctx, userB, notebook.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	list, err := env.notebooks.GetAll(ctx, userB, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := env.notebooks.Search(ctx, userB, "classified", nil)
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = env.notebooks.Delete(ctx, userB, notebook.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// and user A still has it
	got, err := env.notebooks.Show(ctx, userA, notebook.Id)
	require.NoError(t, err)
	assert.Equal(t, "Secret plans", got.Name)
}

func TestUpdateContentOnlyLeavesRestUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	section, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)
	notebook, err := env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name:      "Todo",
		SectionId: &section.Id,
		Content:   "",
	})
	require.NoError(t, err)

	_, err = env.notebooks.UpdateContent(ctx, userId, notebook.Id, &dto.UpdateContentRequest{
		Content: strPtr("<p>hi</p>"),
	})
	require.NoError(t, err)

	got, err := env.notebooks.Show(ctx, userId, notebook.Id)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", got.Content)
	assert.Equal(t, "Todo", got.Name)
	assert.Equal(t, section.Id, got.SectionId)
	assert.False(t, got.UpdatedAt.Before(notebook.UpdatedAt))
}

func TestUpdateContentRequiresContent(t *testing.T) {
	env := newTestEnv(t)
	userId := env.registerUser(t, "ana", "ana@x.com")

	_, err := env.notebooks.UpdateContent(context.Background(), userId, uuid.New(), &dto.UpdateContentRequest{})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestContentRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	section, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)

	content := `<p>quotes " and 'single', unicode héllo, <b>tags</b> &amp; entities</p>`
	notebook, err := env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name:      "Round trip",
		SectionId: &section.Id,
		Content:   content,
	})
	require.NoError(t, err)

	got, err := env.notebooks.Show(ctx, userId, notebook.Id)
	require.NoError(t, err)
	assert.Equal(t, content, got.Content)
}

func TestDuplicateDefaultsNameAndCopiesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	section, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)
	source, err := env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name:      "Todo",
		SectionId: &section.Id,
		Content:   "<p>copy me</p>",
	})
	require.NoError(t, err)

	res, err := env.notebooks.Duplicate(ctx, userId, source.Id, &dto.DuplicateNotebookRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Todo - Copy", res.Notebook.Name)
	assert.Equal(t, "<p>copy me</p>", res.Notebook.Content)
	assert.Equal(t, section.Id, res.Notebook.SectionId)
	assert.NotEqual(t, source.Id, res.Notebook.Id)
}

func TestSearchMatchesNameAndContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	work, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)
	home, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Home"})
	require.NoError(t, err)

	_, err = env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name: "Groceries", SectionId: &home.Id, Content: "<p>milk, eggs</p>",
	})
	require.NoError(t, err)
	_, err = env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name: "Meeting notes", SectionId: &work.Id, Content: "<p>discuss milk pricing</p>",
	})
	require.NoError(t, err)

	// substring match over both name and content, case-insensitive
	found, err := env.notebooks.Search(ctx, userId, "MILK", nil)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// narrowed to one section
	found, err = env.notebooks.Search(ctx, userId, "milk", &work.Id)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Meeting notes", found[0].Name)

	// empty query is rejected
	_, err = env.notebooks.Search(ctx, userId, "   ", nil)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	work, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)
	archive, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Archive"})
	require.NoError(t, err)

	notebook, err := env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
		Name: "Todo", SectionId: &work.Id, Content: "<p>keep</p>",
	})
	require.NoError(t, err)

	updated, err := env.notebooks.Update(ctx, userId, notebook.Id, &dto.UpdateNotebookRequest{
		SectionId: &archive.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, archive.Id, updated.SectionId)
	assert.Equal(t, "Todo", updated.Name)
	assert.Equal(t, "<p>keep</p>", updated.Content)

	// moving to a section that is not yours is a 404
	other := env.registerUser(t, "ben", "ben@x.com")
	foreign, err := env.sections.Create(ctx, other, &dto.CreateSectionRequest{Name: "Foreign"})
	require.NoError(t, err)

	_, err = env.notebooks.Update(ctx, userId, notebook.Id, &dto.UpdateNotebookRequest{
		SectionId: &foreign.Id,
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSectionStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := env.registerUser(t, "ana", "ana@x.com")

	section, err := env.sections.Create(ctx, userId, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = env.notebooks.Create(ctx, userId, &dto.CreateNotebookRequest{
			Name: "nb", SectionId: &section.Id,
		})
		require.NoError(t, err)
	}

	stats, err := env.sections.Stats(ctx, userId, section.Id)
	require.NoError(t, err)
	assert.Equal(t, section.Id, stats.SectionId)
	assert.Equal(t, "Work", stats.SectionName)
	assert.Equal(t, int64(2), stats.TotalNotebooks)
}

func strPtr(s string) *string {
	return &s
}
