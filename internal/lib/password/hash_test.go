package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/lib/password"
)

func TestGetHash(t *testing.T) {
	hash, err := password.GetHash("secretpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secretpassword", hash)
}

func TestCompareHash(t *testing.T) {
	hash, err := password.GetHash("secretpassword")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		assert.NoError(t, password.CompareHash(hash, "secretpassword"))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.Error(t, password.CompareHash(hash, "wrongpassword"))
	})

	t.Run("hashes differ between calls", func(t *testing.T) {
		other, err := password.GetHash("secretpassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
