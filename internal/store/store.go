// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

// Package store defines the vector-store surface the tool depends on.
// Implementations live in subpackages (qdrant).
package store

import "context"

// Point is the atomic stored unit: an id, its embedding vector, and the
// payload split into the raw content and its metadata.
type Point struct {
	ID       string
	Vector   []float32
	Content  string
	Metadata map[string]any
}

// ScoredPoint is a Point annotated with a similarity score. Higher means
// more similar under cosine distance.
type ScoredPoint struct {
	Point
	Score float32
}

// MatchFilter restricts a query to points whose metadata field Key equals
// Value. A nil filter means no restriction.
type MatchFilter struct {
	Key   string
	Value string
}

// VectorStore manages collections of embedded points.
type VectorStore interface {
	// EnsureCollection creates the named collection with the given vector
	// width and cosine distance if it does not already exist. Safe to call
	// concurrently for the same name.
	EnsureCollection(ctx context.Context, name string, dims uint64) error

	// Upsert inserts or fully replaces points by id.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Scroll returns up to limit points in store-defined order.
	Scroll(ctx context.Context, collection string, limit uint64) ([]Point, error)

	// Delete removes points by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection string, ids []string) error

	// Query returns up to limit points ranked by descending similarity to
	// the given vector, optionally restricted by filter.
	Query(ctx context.Context, collection string, vector []float32, limit uint64, filter *MatchFilter) ([]ScoredPoint, error)

	// Close releases the underlying connection.
	Close() error
}
