// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

// Package qdrant implements store.VectorStore against a Qdrant server using
// the official Go client over gRPC.
package qdrant

import (
	"context"

	qdrantclient "github.com/qdrant/go-client/qdrant"

	"github.com/vectool-dev/vectool/internal/store"
	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// Compile-time interface check.
var _ store.VectorStore = (*Store)(nil)

// Config holds Qdrant connection parameters. URL is required; there is no
// default endpoint.
type Config struct {
	// URL is the Qdrant server address: scheme://host[:port] or host[:port].
	// The gRPC port (6334) is assumed when none is given; https implies TLS.
	URL string

	// APIKey authenticates against secured deployments. Optional.
	APIKey string
}

// Store talks to a single Qdrant server. The connection is created once and
// reused across calls; per-collection creation is deduplicated by the guard.
type Store struct {
	client *qdrantclient.Client
	guard  store.Guard
}

// New connects to the Qdrant server described by cfg.
func New(cfg Config) (*Store, error) {
	host, port, useTLS, err := parseTarget(cfg.URL)
	if err != nil {
		return nil, err
	}

	client, err := qdrantclient.NewClient(&qdrantclient.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, vecerr.Wrapf(err, vecerr.CodeStoreConnectFailure, "connecting to qdrant at %s:%d", host, port)
	}

	return &Store{client: client}, nil
}

// EnsureCollection creates the collection with the given vector width and
// cosine distance if absent. The exists-then-create pair runs under a
// process-local guard so concurrent first-time calls do not race.
func (s *Store) EnsureCollection(ctx context.Context, name string, dims uint64) error {
	return s.guard.Do(name, func() error {
		exists, err := s.client.CollectionExists(ctx, name)
		if err != nil {
			return vecerr.Wrap(err, vecerr.CodeStoreCollectionEnsureFailure,
				"checking collection", vecerr.FieldCollection(name))
		}
		if exists {
			return nil
		}

		err = s.client.CreateCollection(ctx, &qdrantclient.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrantclient.NewVectorsConfig(&qdrantclient.VectorParams{
				Size:     dims,
				Distance: qdrantclient.Distance_Cosine,
			}),
		})
		if err != nil {
			return vecerr.Wrap(err, vecerr.CodeStoreCollectionEnsureFailure,
				"creating collection", vecerr.FieldCollection(name))
		}
		return nil
	})
}

// Upsert inserts or fully replaces points. Writes wait for the store to
// apply them so a subsequent read observes the write.
func (s *Store) Upsert(ctx context.Context, collection string, points []store.Point) error {
	structs := make([]*qdrantclient.PointStruct, len(points))
	for i, p := range points {
		structs[i] = &qdrantclient.PointStruct{
			Id:      qdrantclient.NewID(p.ID),
			Vectors: qdrantclient.NewVectors(p.Vector...),
			Payload: buildPayload(p.Content, p.Metadata),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrantclient.PtrOf(true),
		Points:         structs,
	})
	if err != nil {
		return vecerr.Wrap(err, vecerr.CodeStorePointUpsertFailure,
			"upserting points", vecerr.FieldCollection(collection))
	}
	return nil
}

// Scroll returns up to limit points in the store's cursor order.
func (s *Store) Scroll(ctx context.Context, collection string, limit uint64) ([]store.Point, error) {
	retrieved, err := s.client.Scroll(ctx, &qdrantclient.ScrollPoints{
		CollectionName: collection,
		Limit:          qdrantclient.PtrOf(uint32(limit)),
		WithPayload:    qdrantclient.NewWithPayload(true),
	})
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStorePointScrollFailure,
			"scrolling points", vecerr.FieldCollection(collection))
	}

	points := make([]store.Point, 0, len(retrieved))
	for _, r := range retrieved {
		content, metadata := parsePayload(r.GetPayload())
		points = append(points, store.Point{
			ID:       pointIDString(r.GetId()),
			Content:  content,
			Metadata: metadata,
		})
	}
	return points, nil
}

// Delete removes points by id. Qdrant treats deleting an absent id as a
// successful no-op, which the tool relies on.
func (s *Store) Delete(ctx context.Context, collection string, ids []string) error {
	pointIDs := make([]*qdrantclient.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrantclient.NewID(id)
	}

	_, err := s.client.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: collection,
		Wait:           qdrantclient.PtrOf(true),
		Points:         qdrantclient.NewPointsSelector(pointIDs...),
	})
	if err != nil {
		return vecerr.Wrap(err, vecerr.CodeStorePointDeleteFailure,
			"deleting points", vecerr.FieldCollection(collection))
	}
	return nil
}

// Query runs a similarity search, ranked by the collection's distance metric.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, limit uint64, filter *store.MatchFilter) ([]store.ScoredPoint, error) {
	results, err := s.client.Query(ctx, &qdrantclient.QueryPoints{
		CollectionName: collection,
		Query:          qdrantclient.NewQuery(vector...),
		Limit:          qdrantclient.PtrOf(limit),
		Filter:         buildFilter(filter),
		WithPayload:    qdrantclient.NewWithPayload(true),
	})
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStorePointQueryFailure,
			"querying points", vecerr.FieldCollection(collection))
	}

	scored := make([]store.ScoredPoint, 0, len(results))
	for _, r := range results {
		content, metadata := parsePayload(r.GetPayload())
		scored = append(scored, store.ScoredPoint{
			Point: store.Point{
				ID:       pointIDString(r.GetId()),
				Content:  content,
				Metadata: metadata,
			},
			Score: r.GetScore(),
		})
	}
	return scored, nil
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// buildFilter converts a MatchFilter into a Qdrant keyword-equality filter
// on the nested metadata field. A nil filter stays nil (unfiltered query).
func buildFilter(f *store.MatchFilter) *qdrantclient.Filter {
	if f == nil {
		return nil
	}
	return &qdrantclient.Filter{
		Must: []*qdrantclient.Condition{
			qdrantclient.NewMatch(metadataKeyPrefix+f.Key, f.Value),
		},
	}
}
