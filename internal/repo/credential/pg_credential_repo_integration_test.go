//go:build integration
// +build integration

package credential_repo

import (
	"context"
	"testing"

	"modelgate/internal/apperror"
	"modelgate/internal/domain/credential"
	"modelgate/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgCredentialRepo_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := testinfra.NewPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { pg.Cleanup(ctx) })

	store := NewPgCredentialRepo(pg.Pool)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		cred := credential.Credential{
			Name:   "prod-openai",
			Values: map[string]string{"api_key": "sk-1", "api_base": "https://api.openai.com/v1"},
			Info:   map[string]string{"env": "prod"},
		}
		require.NoError(t, store.Create(ctx, cred))

		got, err := store.Get(ctx, "prod-openai")
		require.NoError(t, err)
		assert.Equal(t, cred.Values, got.Values)
		assert.Equal(t, cred.Info, got.Info)
		assert.False(t, got.CreatedAt.IsZero())

		assert.ErrorIs(t, store.Create(ctx, cred), apperror.ErrAlreadyExists)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		for _, name := range []string{"charlie", "alpha", "bravo"} {
			require.NoError(t, store.Create(ctx, credential.Credential{Name: name}))
		}

		creds, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, creds, 3)
		assert.Equal(t, "alpha", creds[0].Name)
		assert.Equal(t, "bravo", creds[1].Name)
		assert.Equal(t, "charlie", creds[2].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		require.NoError(t, store.Create(ctx, credential.Credential{Name: "tmp"}))
		require.NoError(t, store.Delete(ctx, "tmp"))

		_, err := store.Get(ctx, "tmp")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "tmp"), apperror.ErrNotFound)
	})
}
