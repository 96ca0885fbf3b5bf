package users_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRepository_SQLite_RoundTrip(t *testing.T) {
	repo := users.NewSQLRepository(repotest.OpenSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSQLRepository_SQLite_DuplicateEmail(t *testing.T) {
	db := repotest.OpenSQLite(t)
	repo := users.NewSQLRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h2"})
	require.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}
