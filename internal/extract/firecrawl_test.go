package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Firecrawl {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFirecrawl(Config{APIKey: "fc-test", BaseURL: srv.URL + "/"}, zap.NewNop())
}

func TestExtractSendsScrapeRequest(t *testing.T) {
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/scrape", r.URL.Path)
		assert.Equal(t, "Bearer fc-test", r.Header.Get("Authorization"))

		var body scrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://shop.example/p/1", body.URL)
		assert.Equal(t, []string{"json"}, body.Formats)
		assert.NotEmpty(t, body.JSONOptions.Prompt)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"json": {"title": "Lamp", "price": "$20", "availability": false, "tags": ["home"]},
				"metadata": {"title": "Lamp | Shop", "description": "A lamp", "ogImage": "https://img/lamp.jpg"}
			}
		}`))
	})

	res, err := f.Extract(context.Background(), "https://shop.example/p/1")
	require.NoError(t, err)

	assert.Equal(t, "Lamp", res.Product.Title)
	assert.Equal(t, "$20", res.Product.Price)
	require.NotNil(t, res.Product.Availability)
	assert.False(t, *res.Product.Availability)
	assert.Equal(t, []string{"home"}, res.Product.Tags)
	assert.Equal(t, "https://img/lamp.jpg", res.Metadata.OGImage)
}

func TestExtractMissingSections(t *testing.T) {
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {}}`))
	})

	res, err := f.Extract(context.Background(), "https://shop.example")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestExtractLooselyTypedReply(t *testing.T) {
	yes := true

	tests := []struct {
		name string
		data string
		want Result
	}{
		{
			name: "numeric prices",
			data: `{"json": {"title": "Lamp", "price": 19.99, "originalPrice": 25}}`,
			want: Result{Product: Product{Title: "Lamp", Price: "19.99", OriginalPrice: "25"}},
		},
		{
			name: "array valued metadata",
			data: `{"metadata": {"title": ["Lamp", "Lamp | Shop"], "description": [], "ogImage": ["https://img/lamp.jpg"]}}`,
			want: Result{Metadata: PageMetadata{Title: "Lamp", OGImage: "https://img/lamp.jpg"}},
		},
		{
			name: "string availability and tags",
			data: `{"json": {"title": "Lamp", "availability": "true", "tags": "home, lighting"}}`,
			want: Result{Product: Product{Title: "Lamp", Availability: &yes, Tags: []string{"home", "lighting"}}},
		},
		{
			name: "unusable values are dropped",
			data: `{"json": {"title": {"text": "Lamp"}, "price": null, "availability": "in stock", "tags": [1, "home", null]}}`,
			want: Result{Product: Product{Tags: []string{"1", "home"}}},
		},
		{
			name: "non-object section keeps the other",
			data: `{"json": "Lamp", "metadata": {"title": "Lamp | Shop"}}`,
			want: Result{Metadata: PageMetadata{Title: "Lamp | Shop"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success": true, "data": ` + tt.data + `}`))
			})

			res, err := f.Extract(context.Background(), "https://shop.example")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestExtractUnsuccessful(t *testing.T) {
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "blocked"}`))
	})

	_, err := f.Extract(context.Background(), "https://shop.example")
	assert.ErrorIs(t, err, ErrProviderRejected)
}

func TestExtractHTTPError(t *testing.T) {
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := f.Extract(context.Background(), "https://shop.example")
	assert.Error(t, err)
}

func TestExtractCircuitOpens(t *testing.T) {
	var calls int32
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		_, err := f.Extract(context.Background(), "https://shop.example")
		require.Error(t, err)
	}

	_, err := f.Extract(context.Background(), "https://shop.example")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestExtractHonorsCanceledContext(t *testing.T) {
	f := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {}}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Extract(ctx, "https://shop.example")
	assert.Error(t, err)
}
