package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eventhub/internal/database"
	"eventhub/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedSessions(t *testing.T, repo *RefreshTokenRepository, userID int64, n int) []string {
	t.Helper()
	hashes := make([]string, 0, n)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		hash := fmt.Sprintf("hash-%d-%d", userID, i)
		require.NoError(t, repo.Create(context.Background(), &domain.RefreshToken{
			UserID:    userID,
			TokenHash: hash,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			ExpiresAt: time.Now().Add(time.Hour),
		}))
		hashes = append(hashes, hash)
	}
	return hashes
}

func TestRefreshTokenRepository_ExistsAndDelete(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	hashes := seedSessions(t, repo, 1, 2)

	ok, err := repo.Exists(ctx, 1, hashes[0])
	require.NoError(t, err)
	assert.True(t, ok)

	// Wrong user, right hash.
	ok, err = repo.Exists(ctx, 2, hashes[0])
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.DeleteByHash(ctx, 1, hashes[0]))

	ok, err = repo.Exists(ctx, 1, hashes[0])
	require.NoError(t, err)
	assert.False(t, ok)

	// The other session survives.
	ok, err = repo.Exists(ctx, 1, hashes[1])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRefreshTokenRepository_EvictOldest(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	hashes := seedSessions(t, repo, 1, 5)
	otherUser := seedSessions(t, repo, 2, 3)

	require.NoError(t, repo.EvictOldest(ctx, 1, 3))

	// The two oldest are gone, the three newest remain.
	for i, hash := range hashes {
		ok, err := repo.Exists(ctx, 1, hash)
		require.NoError(t, err)
		assert.Equal(t, i >= 2, ok, "session %d", i)
	}

	// Another user's sessions are untouched.
	for _, hash := range otherUser {
		ok, err := repo.Exists(ctx, 2, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// Under the cap nothing is evicted.
	require.NoError(t, repo.EvictOldest(ctx, 2, 3))
	for _, hash := range otherUser {
		ok, err := repo.Exists(ctx, 2, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRefreshTokenRepository_DeleteByUser(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	mine := seedSessions(t, repo, 1, 3)
	theirs := seedSessions(t, repo, 2, 1)

	require.NoError(t, repo.DeleteByUser(ctx, 1))

	for _, hash := range mine {
		ok, err := repo.Exists(ctx, 1, hash)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err := repo.Exists(ctx, 2, theirs[0])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
		UserID:    1,
		TokenHash: "stale",
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &domain.RefreshToken{
		UserID:    1,
		TokenHash: "fresh",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}))

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	ok, err := repo.Exists(ctx, 1, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}
