package client

import (
	"context"
	"testing"

	"booknotion-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffline(t *testing.T) *Offline {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStateStore(dir)
	require.NoError(t, err)

	o, err := NewOffline(dir+"/local.db", "test-secret", store)
	require.NoError(t, err)
	return o
}

func TestOfflineRequiresSession(t *testing.T) {
	o := newOffline(t)

	_, err := o.Sections(context.Background())
	require.Error(t, err)
}

func TestOfflineFullParity(t *testing.T) {
	o := newOffline(t)
	ctx := context.Background()

	_, err := o.Register(ctx, &dto.RegisterRequest{
		Username: "ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	section, err := o.CreateSection(ctx, &dto.CreateSectionRequest{Name: "Work"})
	require.NoError(t, err)

	notebook, err := o.CreateNotebook(ctx, &dto.CreateNotebookRequest{
		Name:      "Todo",
		SectionId: &section.Id,
		Content:   "<p>hi</p>",
	})
	require.NoError(t, err)

	// search works offline
	found, err := o.SearchNotebooks(ctx, "todo", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, notebook.Id, found[0].Id)

	// and so does cascading delete
	deleted, err := o.DeleteSection(ctx, section.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.DeletedNotebooks)

	_, err = o.Notebook(ctx, notebook.Id)
	require.Error(t, err)
}

func TestOfflineRestoresSessionFromState(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStateStore(dir)
	require.NoError(t, err)

	o, err := NewOffline(dir+"/local.db", "test-secret", store)
	require.NoError(t, err)

	_, err = o.Register(context.Background(), &dto.RegisterRequest{
		Username: "ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	// a second gateway over the same state and database resumes the session
	restored, err := NewOffline(dir+"/local.db", "test-secret", store)
	require.NoError(t, err)

	me, err := restored.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Username)
}
