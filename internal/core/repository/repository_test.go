package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

// fakeRow scans a fixed set of values, or returns err.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// fakeDB records the last statement and returns canned results.
type fakeDB struct {
	row      fakeRow
	tag      pgconn.CommandTag
	execErr  error
	copied   int
	copyCols []string
	copyErr  error

	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.tag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, errors.New("not supported by fakeDB")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func (f *fakeDB) CopyFrom(ctx context.Context, _ pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	f.copyCols = cols
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	for src.Next() {
		if _, err := src.Values(); err != nil {
			return 0, err
		}
		f.copied++
	}
	return int64(f.copied), nil
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{values: []any{"u-1", "Ada", "ada@example.com", "$2a$12$hash", ""}}}
		got, err := NewUserRepository(db).GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "u-1", got.ID)
		assert.Equal(t, "$2a$12$hash", got.PasswordHash)
		assert.Equal(t, []any{"ada@example.com"}, db.lastArgs)
		assert.Contains(t, db.lastSQL, "WHERE email = $1")
	})

	t.Run("not found", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		got, err := NewUserRepository(db).GetByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: errors.New("db down")}}
		_, err := NewUserRepository(db).GetByEmail(ctx, "ada@example.com")
		assert.EqualError(t, err, "db down")
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{values: []any{"u-1"}}}
		got, err := NewUserRepository(db).Create(ctx, "Ada", "ada@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, &domain.UserRow{ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}, got)
		require.Len(t, db.lastArgs, 4)
		assert.NotEmpty(t, db.lastArgs[0])
	})

	t.Run("unique violation", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "23505"}}}
		_, err := NewUserRepository(db).Create(ctx, "Ada", "ada@example.com", "hash")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("other pg error", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "57P01"}}}
		_, err := NewUserRepository(db).CreateExternal(ctx, "ext", "Ada", "ada@example.com")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestUserRepository_Count(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{int64(3)}}}
	n, err := NewUserRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestBoardRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		got, err := NewBoardRepository(db).Update(ctx, "u-1", "b-1", domain.BoardPatch{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clears image", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{values: []any{
			"b-1", "u-1", "POEMS", nil, "color", "#cfd2d9", "#d9e1eb", "#b3c1c9", now, now,
		}}}
		got, err := NewBoardRepository(db).Update(ctx, "u-1", "b-1", domain.BoardPatch{ImageSet: true})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Image)
		assert.Equal(t, "color", got.BackgroundMode)
		assert.Equal(t, "b-1", db.lastArgs[0])
		assert.Equal(t, "u-1", db.lastArgs[1])
		assert.Equal(t, true, db.lastArgs[3])
	})
}

func TestBoardRepository_CreateMany(t *testing.T) {
	ctx := context.Background()

	db := &fakeDB{}
	repo := NewBoardRepository(db)
	require.NoError(t, repo.CreateMany(ctx, nil))
	assert.Zero(t, db.copied)

	boards := []domain.Board{{UserID: "u-1", Title: "A"}, {UserID: "u-1", Title: "B"}}
	require.NoError(t, repo.CreateMany(ctx, boards))
	assert.Equal(t, 2, db.copied)
	assert.Contains(t, db.copyCols, "created_at")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	ok, err := NewBoardRepository(db).Delete(ctx, "u-1", "b-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []any{"b-1", "u-1"}, db.lastArgs)

	db = &fakeDB{tag: pgconn.NewCommandTag("DELETE 0")}
	ok, err = NewWorkspaceRepository(db).Delete(ctx, "u-1", "w-1")
	require.NoError(t, err)
	assert.False(t, ok)

	db = &fakeDB{execErr: errors.New("boom")}
	_, err = NewWorkspaceRepository(db).Delete(ctx, "u-1", "w-1")
	assert.Error(t, err)
}

func TestWorkspaceRepository_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	got, err := NewWorkspaceRepository(db).Get(ctx, "u-1", "w-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	db = &fakeDB{row: fakeRow{values: []any{"w-1", "u-1", "Planning", "default", now, now}}}
	got, err = NewWorkspaceRepository(db).Get(ctx, "u-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, "Planning", got.Name)
}
