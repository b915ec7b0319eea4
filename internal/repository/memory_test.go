package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored session can be read back", func(t *testing.T) {
		// Given: a session with one move
		repo := NewMemoryGameRepository(0)
		session := entity.NewSession("123")
		require.True(t, session.Game.ApplyMove(4))

		// When: it is stored and read back
		require.NoError(t, repo.CreateOrUpdate(ctx, session))
		stored, err := repo.GetByID(ctx, "123")

		// Then: the engine state is the same
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("Stored session is a copy", func(t *testing.T) {
		// Given: a stored session
		repo := NewMemoryGameRepository(0)
		session := entity.NewSession("123")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: the caller keeps playing without storing
		require.True(t, session.Game.ApplyMove(0))

		// Then: the store still holds the old board
		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, stored.Game.Board())
	})

	t.Run("Unknown session", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.GetByID(ctx, "9999999")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = repo.DeleteByID(ctx, "9999999")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Deleted session is gone", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewSession("123")))

		require.NoError(t, repo.DeleteByID(ctx, "123"))

		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Session expires after ttl", func(t *testing.T) {
		// Given: a repository with a fake clock
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		repo := NewMemoryGameRepository(time.Minute).(*memoryGame)
		repo.now = func() time.Time { return now }
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: less than the ttl has passed
		now = now.Add(59 * time.Second)
		_, err := repo.GetByID(ctx, "123")

		// Then: the session is still there
		require.NoError(t, err)

		// When: the ttl has passed
		now = now.Add(time.Second)
		_, err = repo.GetByID(ctx, "123")

		// Then: the session is gone
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Session without a game is rejected", func(t *testing.T) {
		repo := NewMemoryGameRepository(0).(*memoryGame)

		for data, expected := range map[string]error{
			`{"id":"123","game":null}`:                                apperror.ErrInvalidSession,
			`{"id":"123"}`:                                            apperror.ErrInvalidSession,
			`{"id":"123","game":{"board":["X","","",""],"turn":"O"}}`: entity.ErrInvalidBoard,
		} {
			// Given: a stored session that cannot be played
			repo.sessions["123"] = memoryEntry{data: []byte(data)}

			// When: it is read back
			stored, err := repo.GetByID(ctx, "123")

			// Then: an error is returned instead of the session
			require.ErrorIs(t, err, expected, data)
			assert.Nil(t, stored)
		}
	})
}
