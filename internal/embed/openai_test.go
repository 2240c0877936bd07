// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package embed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vectool-dev/vectool/internal/embed"
	vecerr "github.com/vectool-dev/vectool/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingsResponse mirrors the subset of the OpenAI embeddings response the
// embedder consumes.
type embeddingsResponse struct {
	Object string          `json:"object"`
	Data   []embeddingData `json:"data"`
	Model  string          `json:"model"`
}

type embeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int64     `json:"index"`
}

func newMockEmbeddingsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAI_RequiresAPIKey(t *testing.T) {
	_, err := embed.NewOpenAI(embed.OpenAIConfig{})
	require.Error(t, err)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeConfigValidateInvalidValue))
}

func TestNewOpenAI_UnknownModelNeedsDimensions(t *testing.T) {
	_, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test", Model: "not-a-model"})
	require.Error(t, err)
	assert.True(t, vecerr.IsInvalidInput(err))

	e, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test", Model: "not-a-model", Dimensions: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, e.Dimensions())
}

func TestNewOpenAI_DefaultsModel(t *testing.T) {
	e, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", e.Model())
	assert.Equal(t, 1536, e.Dimensions())
}

func TestOpenAI_Embed(t *testing.T) {
	srv := newMockEmbeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text-embedding-3-small", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(embeddingsResponse{
			Object: "list",
			Model:  "text-embedding-3-small",
			Data: []embeddingData{
				{Object: "embedding", Embedding: []float64{0.1, -0.2, 0.3}, Index: 0},
			},
		})
	})

	e, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, -0.2, 0.3}, vec)
}

func TestOpenAI_EmbedEmptyResponse(t *testing.T) {
	srv := newMockEmbeddingsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(embeddingsResponse{Object: "list", Model: "text-embedding-3-small"})
	})

	e, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeEmbedResponseInvalid))
}

func TestOpenAI_EmbedUpstreamFailure(t *testing.T) {
	srv := newMockEmbeddingsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid input"}}`, http.StatusBadRequest)
	})

	e, err := embed.NewOpenAI(embed.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, vecerr.IsUpstreamFailure(err))
}

func TestNewFunc(t *testing.T) {
	e := embed.NewFunc(3, func(_ context.Context, text string) ([]float32, error) {
		assert.Equal(t, "hi", text)
		return []float32{1, 2, 3}, nil
	})

	assert.Equal(t, 3, e.Dimensions())
	vec, err := e.Embed(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestModelDimensions(t *testing.T) {
	assert.Equal(t, 1536, embed.ModelDimensions("text-embedding-3-small"))
	assert.Equal(t, 3072, embed.ModelDimensions("text-embedding-3-large"))
	assert.Equal(t, 0, embed.ModelDimensions("mystery"))
}
