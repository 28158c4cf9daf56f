package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
)

// InstrumentedStore records the outcome and latency of every call on next.
type InstrumentedStore struct {
	next    DocumentStore
	metrics *metrics.Collector
}

func NewInstrumentedStore(next DocumentStore, m *metrics.Collector) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (body []byte, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore("get", start, err) }()
	return s.next.Get(ctx, key)
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, body []byte) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore("set", start, err) }()
	return s.next.Set(ctx, key, body)
}

func (s *InstrumentedStore) Update(ctx context.Context, keys []string, fn UpdateFunc) (err error) {
	start := time.Now()
	var fnErr error
	defer func() {
		// A rejection from fn is a domain outcome, not a store failure.
		if fnErr != nil && errors.Is(err, fnErr) {
			s.metrics.ObserveStore("update", start, nil)
			return
		}
		s.metrics.ObserveStore("update", start, err)
	}()
	return s.next.Update(ctx, keys, func(docs map[string][]byte) (map[string][]byte, error) {
		out, ferr := fn(docs)
		fnErr = ferr
		return out, ferr
	})
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
