package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every Repository must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, v)
	})

	t.Run("missing key is nil, nil", func(t *testing.T) {
		r := newRepo(t)
		v, err := r.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("set many and list", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.SetMany(ctx, map[string][]byte{
			"a": {0xAA},
			"b": {0xBB, 0xCC},
		}))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"a": {0xAA}, "b": {0xBB, 0xCC}}, m)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "x", []byte{1}))
		require.NoError(t, r.Delete(ctx, "x"))
		require.NoError(t, r.Delete(ctx, "x"))

		v, err := r.Get(ctx, "x")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("delete many leaves other keys", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": {1}, "b": {2}, "c": {3}}))
		require.NoError(t, r.DeleteMany(ctx, "a", "b", "missing"))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"c": {3}}, m)
	})

	t.Run("clear", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": {1}, "b": {2}}))
		require.NoError(t, r.Clear(ctx))
		require.NoError(t, r.Clear(ctx))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}
