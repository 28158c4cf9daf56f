package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/wishkeeper/wishkeeper-go/internal/repository"
)

func newTestCollections(t *testing.T) *repository.Collections {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return repository.NewCollections(repository.NewRedisStore(client), "")
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func mustCount(t *testing.T, data *repository.Collections, wishlistID string) int {
	t.Helper()
	wishlists, err := data.Wishlists(context.Background())
	require.NoError(t, err)
	for _, w := range wishlists {
		if w.ID == wishlistID {
			return w.ItemCount
		}
	}
	t.Fatalf("wishlist %s not found", wishlistID)
	return 0
}
