package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
	"github.com/RehanMehtaIND/noteslite/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestStarterBoards(t *testing.T) {
	boards := StarterBoards("u-1")
	require.Len(t, boards, len(StarterTemplates))
	for i, b := range boards {
		assert.Equal(t, "u-1", b.UserID)
		assert.Equal(t, StarterTemplates[i].Title, b.Title)
		require.NotNil(t, b.Image)
		assert.Equal(t, StarterTemplates[i].Image, *b.Image)
	}
	// Each board owns its image pointer.
	assert.NotSame(t, boards[0].Image, boards[1].Image)
}

func TestBoardService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(testutil.NewBoards())

	b, err := svc.Create(ctx, "u-1", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBoardTitle, b.Title)
	assert.Equal(t, StarterTemplates[0].Image, *b.Image)

	b, err = svc.Create(ctx, "u-1", strPtr("  reading list "))
	require.NoError(t, err)
	assert.Equal(t, "READING LIST", b.Title)

	list, err := svc.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, DefaultBoardTitle, list[0].Title)

	other, err := svc.List(ctx, "u-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBoardService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(testutil.NewBoards())
	b, err := svc.Create(ctx, "u-1", nil)
	require.NoError(t, err)

	t.Run("no updates", func(t *testing.T) {
		_, err := svc.Update(ctx, "u-1", b.ID, domain.BoardPatch{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "No updates provided.", verr.Message)
	})

	t.Run("title upper-cased and image cleared", func(t *testing.T) {
		got, err := svc.Update(ctx, "u-1", b.ID, domain.BoardPatch{Title: strPtr("poems"), ImageSet: true})
		require.NoError(t, err)
		assert.Equal(t, "POEMS", got.Title)
		assert.Nil(t, got.Image)
	})

	t.Run("not owned", func(t *testing.T) {
		_, err := svc.Update(ctx, "u-2", b.ID, domain.BoardPatch{Title: strPtr("mine")})
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})
}

func TestBoardService_Delete(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewBoards()
	svc := NewBoardService(store)
	b, err := svc.Create(ctx, "u-1", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "u-2", b.ID), ErrBoardNotFound)
	require.NoError(t, svc.Delete(ctx, "u-1", b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u-1", b.ID), ErrBoardNotFound)

	store.Err = errors.New("db down")
	err = svc.Delete(ctx, "u-1", b.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBoardNotFound)
}
