package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, ids ...string) *itemstore.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := itemstore.NewClient(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	for i, id := range ids {
		item := &itemstore.Item{ID: id, Name: fmt.Sprintf("item-%d", i), Ring: "Adopt", Quadrant: "Tools"}
		require.NoError(t, client.CreateItem(context.Background(), item))
	}
	return client
}

func TestResolveItemID(t *testing.T) {
	const (
		idA = "abc12345-0000-4000-8000-000000000001"
		idB = "abc12399-0000-4000-8000-000000000002"
		idC = "def00000-0000-4000-8000-000000000003"
	)
	store := setupStore(t, idA, idB, idC)
	ctx := context.Background()

	t.Run("full UUID", func(t *testing.T) {
		got, err := ResolveItemID(ctx, store, idC)
		require.NoError(t, err)
		assert.Equal(t, idC, got)
	})

	t.Run("full UUID upper case", func(t *testing.T) {
		got, err := ResolveItemID(ctx, store, "DEF00000-0000-4000-8000-000000000003")
		require.NoError(t, err)
		assert.Equal(t, idC, got)
	})

	t.Run("unknown full UUID", func(t *testing.T) {
		_, err := ResolveItemID(ctx, store, "99999999-0000-4000-8000-000000000000")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("unique prefix", func(t *testing.T) {
		got, err := ResolveItemID(ctx, store, "abc12345-")
		require.NoError(t, err)
		assert.Equal(t, idA, got)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ResolveItemID(ctx, store, "abc")
		assert.ErrorContains(t, err, "at least 6 characters")
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolveItemID(ctx, store, "ffffff")
		assert.True(t, IsNotFoundError(err))
		assert.ErrorContains(t, err, "no items found matching 'ffffff'")
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := ResolveItemID(ctx, store, "abc123")
		amb, ok := AsAmbiguous(err)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{idA, idB}, amb.Matches)
		assert.Contains(t, amb.Detail(), idA)
		assert.Contains(t, amb.Detail(), "Use a longer prefix")
	})
}

func TestAmbiguousError_DetailTruncates(t *testing.T) {
	var matches []string
	for i := 0; i < 12; i++ {
		matches = append(matches, fmt.Sprintf("id-%02d", i))
	}
	detail := (&AmbiguousError{ShortID: "id-", Matches: matches}).Detail()
	assert.Contains(t, detail, "id-09")
	assert.NotContains(t, detail, "id-10")
	assert.Contains(t, detail, "...and 2 more")
}
