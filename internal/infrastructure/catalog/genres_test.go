package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"genres":[{"id":27,"name":"Horror"},{"id":35,"name":"Comedy"}]}`))
	}))
}

func TestGenreIndexName(t *testing.T) {
	var hits int32
	srv := newCatalogServer(t, &hits)
	defer srv.Close()

	idx := NewGenreIndex(nil, "test-key", srv.URL)
	ctx := context.Background()

	name, ok := idx.Name(ctx, 27)
	assert.True(t, ok)
	assert.Equal(t, "Horror", name)

	_, ok = idx.Name(ctx, 99)
	assert.False(t, ok)

	// Second lookup serves from the in-process copy.
	name, ok = idx.Name(ctx, 35)
	assert.True(t, ok)
	assert.Equal(t, "Comedy", name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGenreIndexAll(t *testing.T) {
	var hits int32
	srv := newCatalogServer(t, &hits)
	defer srv.Close()

	idx := NewGenreIndex(nil, "test-key", srv.URL)

	all, err := idx.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]string{27: "Horror", 35: "Comedy"}, all)

	// Mutating the returned copy must not leak into the index.
	all[27] = "mutated"
	name, ok := idx.Name(context.Background(), 27)
	assert.True(t, ok)
	assert.Equal(t, "Horror", name)
}

func TestGenreIndexRetriesAfterFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	var hits int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"genres":[{"id":27,"name":"Horror"}]}`))
	}))
	defer srv.Close()

	idx := NewGenreIndex(nil, "test-key", srv.URL)
	ctx := context.Background()

	_, err := idx.All(ctx)
	require.Error(t, err)

	// A failed load does not wedge the index; the next call fetches again.
	fail.Store(false)
	all, err := idx.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Horror", all[27])
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
