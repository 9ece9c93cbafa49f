package v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/testutil"
)

func TestWorkspaceService(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkspaceService(testutil.NewWorkspaces())

	w, err := svc.Create(ctx, "u-1", " Planning ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Planning", w.Name)
	assert.Equal(t, DefaultWorkspaceTheme, w.Theme)

	themed, err := svc.Create(ctx, "u-1", "Ideas", strPtr("dark"))
	require.NoError(t, err)
	assert.Equal(t, "dark", themed.Theme)

	got, err := svc.Get(ctx, "u-1", w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	_, err = svc.Get(ctx, "u-2", w.ID)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	_, err = svc.Update(ctx, "u-1", w.ID, domain.WorkspacePatch{})
	assert.ErrorIs(t, err, ErrNoUpdates)

	updated, err := svc.Update(ctx, "u-1", w.ID, domain.WorkspacePatch{Name: strPtr(" Roadmap ")})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", updated.Name)
	assert.Equal(t, DefaultWorkspaceTheme, updated.Theme)

	_, err = svc.Update(ctx, "u-2", w.ID, domain.WorkspacePatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	list, err := svc.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, "u-1", w.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u-1", w.ID), ErrWorkspaceNotFound)
}
