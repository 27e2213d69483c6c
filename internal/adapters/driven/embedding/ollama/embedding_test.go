package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/ubot/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewEmbeddingService(Config{BaseURL: server.URL})
}

func TestEmbed_PerTextRequests(t *testing.T) {
	var calls int
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Vector value derived from the input so order is observable.
		v := 0.0
		if req.Input == "second" {
			v = 1.0
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float64{{v, v}},
		})
	})

	got, err := svc.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []float32{0, 0}, got[0])
	assert.Equal(t, []float32{1, 1}, got[1])
}

func TestEmbed_LegacyResponseShape(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": []float64{0.5, 0.5, 0.5},
		})
	})

	got, err := svc.Embed(context.Background(), []string{"question"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, got[0])
}

func TestEmbed_EmptyInput(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for empty input")
	})

	got, err := svc.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmbed_MissingVector(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := svc.Embed(context.Background(), []string{"question"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderResponseInvalid)
}

func TestEmbed_Unreachable(t *testing.T) {
	svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := svc.Embed(context.Background(), []string{"question"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/tags", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
		err := svc.Ping(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	})
}
