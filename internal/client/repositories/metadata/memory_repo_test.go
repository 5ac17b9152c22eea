package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(out))

	out[0] = 'Y'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}
