// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

// Package embed converts text into fixed-width vectors for storage and
// similarity search.
package embed

import "context"

// Embedder is the capability the tool needs from an embedding provider.
// The default implementation calls OpenAI; callers may inject their own.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the vector width this embedder produces.
	Dimensions() int
}

// funcEmbedder adapts a plain function to the Embedder interface.
type funcEmbedder struct {
	dims int
	fn   func(ctx context.Context, text string) ([]float32, error)
}

// NewFunc wraps a function as an Embedder producing vectors of the given
// width. This is the injection point for caller-supplied embedding functions.
func NewFunc(dims int, fn func(ctx context.Context, text string) ([]float32, error)) Embedder {
	return &funcEmbedder{dims: dims, fn: fn}
}

func (f *funcEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.fn(ctx, text)
}

func (f *funcEmbedder) Dimensions() int { return f.dims }

// Known model dimensions.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// ModelDimensions returns the known vector width for a model, or 0 if unknown.
func ModelDimensions(model string) int {
	return modelDimensions[model]
}
