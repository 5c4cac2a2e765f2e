package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RevalidateDropsEveryScope(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "/account/reservations", "1", []byte("a")))
	require.NoError(t, m.Set(ctx, "/account/reservations", "2", []byte("b")))
	require.NoError(t, m.Set(ctx, "/cabins/1", "", []byte("c")))

	require.NoError(t, m.Revalidate(ctx, "/account/reservations"))

	_, ok, _ := m.Get(ctx, "/account/reservations", "1")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "/account/reservations", "2")
	assert.False(t, ok)

	body, ok, err := m.Get(ctx, "/cabins/1", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), body)
}

func TestMemory_SetCopiesBody(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	body := []byte("view")

	require.NoError(t, m.Set(ctx, "/p", "", body))
	body[0] = 'X'

	got, _, _ := m.Get(ctx, "/p", "")
	assert.Equal(t, "view", string(got))
}

func TestPathPattern_EscapesGlob(t *testing.T) {
	assert.Equal(t, `view:/account/reservations/edit/7|*`, pathPattern("/account/reservations/edit/7"))
	assert.Equal(t, `view:/odd\[1\]\*|*`, pathPattern("/odd[1]*"))
	assert.Equal(t, "view:/cabins/3|", viewKey("/cabins/3", ""))
}
