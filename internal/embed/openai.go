// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package embed

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// Compile-time interface check.
var _ Embedder = (*OpenAI)(nil)

// OpenAIConfig holds OpenAI embedder configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, useful for testing against a mock server

	// Dimensions overrides the model's known vector width. Zero means
	// look the model up in the known-dimensions table.
	Dimensions int
}

// OpenAI implements Embedder using the OpenAI Embeddings API.
type OpenAI struct {
	client openaisdk.Client
	model  string
	dims   int
}

// NewOpenAI creates the default OpenAI embedder. Returns an error if the API
// key is missing or the vector width cannot be determined.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, vecerr.New(vecerr.CodeConfigValidateInvalidValue, "openai: missing api_key in config")
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}

	dims := cfg.Dimensions
	if dims == 0 {
		dims = ModelDimensions(cfg.Model)
	}
	if dims == 0 {
		return nil, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue,
			"openai: unknown embedding model %q; set dimensions explicitly", cfg.Model)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openaisdk.NewClient(opts...)
	return &OpenAI{client: client, model: cfg.Model, dims: dims}, nil
}

// Embed requests a single embedding from the OpenAI API.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(o.model),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	})
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeEmbedRequestUpstreamFailure,
			"requesting embedding", vecerr.FieldModel(o.model))
	}

	if len(resp.Data) == 0 {
		return nil, vecerr.New(vecerr.CodeEmbedResponseInvalid,
			"embedding response contained no data", vecerr.FieldModel(o.model))
	}

	raw := resp.Data[0].Embedding
	vector := make([]float32, len(raw))
	for i, v := range raw {
		vector[i] = float32(v)
	}
	return vector, nil
}

// Dimensions returns the configured vector width.
func (o *OpenAI) Dimensions() int { return o.dims }

// Model returns the model name this embedder calls.
func (o *OpenAI) Model() string { return o.model }
