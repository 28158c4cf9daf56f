package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

func testWishlist(id, name string) model.Wishlist {
	return model.Wishlist{ID: id, Name: name, Color: "#10B981"}
}

func TestInstrumentedStoreRecordsOperations(t *testing.T) {
	_, client := setupTestRedis(t)
	m := metrics.NewCollector("wishkeeper")
	c := NewCollections(NewInstrumentedStore(NewRedisStore(client), m), "")
	ctx := context.Background()

	_, err := c.Wishlists(ctx)
	require.NoError(t, err)

	err = c.Mutate(ctx, func(s *Snapshot) error {
		s.Wishlists = append(s.Wishlists, testWishlist("w1", "Books"))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("get", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("update", "ok")))
}

func TestInstrumentedStoreCallbackErrorIsNotStoreError(t *testing.T) {
	_, client := setupTestRedis(t)
	m := metrics.NewCollector("wishkeeper")
	c := NewCollections(NewInstrumentedStore(NewRedisStore(client), m), "")
	errMissing := errors.New("wishlist not found")

	err := c.Mutate(context.Background(), func(s *Snapshot) error {
		return errMissing
	})
	require.ErrorIs(t, err, errMissing)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.StoreOperations.WithLabelValues("update", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("update", "ok")))
}

func TestInstrumentedStoreRecordsBackendErrors(t *testing.T) {
	mr, client := setupTestRedis(t)
	m := metrics.NewCollector("wishkeeper")
	c := NewCollections(NewInstrumentedStore(NewRedisStore(client), m), "")
	mr.Close()

	err := c.Mutate(context.Background(), func(s *Snapshot) error { return nil })
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("update", "error")))
}
