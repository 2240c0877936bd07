// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

// Package tool implements the Qdrant content-management tool: a validated
// dispatch over add, update, list, delete, and search operations against a
// vector collection, reporting results as human-readable text for an agent
// loop.
package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vectool-dev/vectool/internal/embed"
	"github.com/vectool-dev/vectool/internal/store"
	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// Name and Description identify the tool to a hosting agent framework.
const (
	Name        = "Qdrant Content Management Tool"
	Description = "A tool for managing content in Qdrant vector database. " +
		"Supports adding, updating, listing, searching, and deleting content with metadata. " +
		"Uses OpenAI's text-embedding-3-small model for vectorization by default."
)

// Config holds dependencies for Tool.
type Config struct {
	Store    store.VectorStore
	Embedder embed.Embedder

	// Logger receives structured records when errors are flattened at the
	// Execute boundary. Defaults to slog.Default().
	Logger *slog.Logger
}

// Tool routes requests to the operation handlers. All dependencies are
// long-lived; construction happens once, calls share the clients.
type Tool struct {
	store    store.VectorStore
	embedder embed.Embedder
	dims     uint64
	logger   *slog.Logger
}

// New creates a Tool. Returns an error if required dependencies are nil.
func New(cfg Config) (*Tool, error) {
	if cfg.Store == nil {
		return nil, vecerr.New(vecerr.CodeToolRequestInvalidInput, "Store is required")
	}
	if cfg.Embedder == nil {
		return nil, vecerr.New(vecerr.CodeToolRequestInvalidInput, "Embedder is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Tool{
		store:    cfg.Store,
		embedder: cfg.Embedder,
		dims:     uint64(cfg.Embedder.Dimensions()),
		logger:   logger,
	}, nil
}

// Execute is the agent-facing entry point. It always returns a string:
// either a handler report or "Error: <message>". The typed error is logged
// with its code before flattening; callers wanting structure use Run.
func (t *Tool) Execute(ctx context.Context, req Request) string {
	out, err := t.Run(ctx, req)
	if err != nil {
		t.logger.Error("tool action failed",
			slog.String("action", string(req.Action)),
			slog.String("collection", req.CollectionName),
			slog.String("code", string(vecerr.CodeOf(err))),
			slog.Any("error", err),
		)
		return "Error: " + err.Error()
	}
	return out
}

// Run validates the request, ensures the target collection exists, and
// dispatches to the action handler. Unlike Execute it surfaces the typed
// error, widening the tool contract for in-process callers and tests.
func (t *Tool) Run(ctx context.Context, req Request) (string, error) {
	req.normalize()

	if err := req.Validate(); err != nil {
		return "", err
	}

	if err := t.store.EnsureCollection(ctx, req.CollectionName, t.dims); err != nil {
		return "", err
	}

	switch req.Action {
	case ActionAdd:
		return t.add(ctx, req)
	case ActionUpdate:
		return t.update(ctx, req)
	case ActionList:
		return t.list(ctx, req)
	case ActionDelete:
		return t.delete(ctx, req)
	case ActionSearch:
		return t.search(ctx, req)
	default:
		// Not an error: the agent gets a usage hint instead.
		return fmt.Sprintf("Unknown action '%s'. Valid actions are: add, update, list, delete, search.", req.Action), nil
	}
}

// add stores new content under a generated UUID. No collision check: every
// add creates a fresh point.
func (t *Tool) add(ctx context.Context, req Request) (string, error) {
	id := uuid.New().String()

	vector, err := t.embedder.Embed(ctx, req.Content)
	if err != nil {
		return "", err
	}

	point := store.Point{
		ID:       id,
		Vector:   vector,
		Content:  req.Content,
		Metadata: req.Metadata,
	}
	if err := t.store.Upsert(ctx, req.CollectionName, []store.Point{point}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Content added successfully with ID: %s", id), nil
}

// update re-embeds the content and upserts under the caller's point id.
// The old vector and payload are fully replaced, not merged. If no point
// with that id existed, one is silently created (upsert semantics).
func (t *Tool) update(ctx context.Context, req Request) (string, error) {
	vector, err := t.embedder.Embed(ctx, req.Content)
	if err != nil {
		return "", err
	}

	point := store.Point{
		ID:       req.PointID,
		Vector:   vector,
		Content:  req.Content,
		Metadata: req.Metadata,
	}
	if err := t.store.Upsert(ctx, req.CollectionName, []store.Point{point}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Content updated successfully for ID: %s", req.PointID), nil
}

// list reports up to limit points in store order.
func (t *Tool) list(ctx context.Context, req Request) (string, error) {
	points, err := t.store.Scroll(ctx, req.CollectionName, uint64(req.Limit))
	if err != nil {
		return "", err
	}

	if len(points) == 0 {
		return "No content found in collection.", nil
	}

	var lines []string
	for _, p := range points {
		lines = append(lines,
			"ID: "+p.ID,
			"Content: "+contentOrPlaceholder(p.Content),
			"Metadata: "+formatMetadata(p.Metadata),
			"---",
		)
	}
	return strings.Join(lines, "\n"), nil
}

// delete removes a point by id. A missing id still reports success; the
// store's idempotent-delete semantics are inherited as-is.
func (t *Tool) delete(ctx context.Context, req Request) (string, error) {
	if err := t.store.Delete(ctx, req.CollectionName, []string{req.PointID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Content deleted successfully for ID: %s", req.PointID), nil
}

// search embeds the query and reports similar points with scores. The
// metadata filter applies only when both filter_by and filter_value are
// set; a half-supplied pair searches unfiltered.
func (t *Tool) search(ctx context.Context, req Request) (string, error) {
	vector, err := t.embedder.Embed(ctx, req.Query)
	if err != nil {
		return "", err
	}

	var filter *store.MatchFilter
	if req.FilterBy != "" && req.FilterValue != "" {
		filter = &store.MatchFilter{Key: req.FilterBy, Value: req.FilterValue}
	}

	results, err := t.store.Query(ctx, req.CollectionName, vector, uint64(req.Limit), filter)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "No matching content found.", nil
	}

	var lines []string
	for _, r := range results {
		lines = append(lines,
			"ID: "+r.ID,
			"Content: "+contentOrPlaceholder(r.Content),
			"Metadata: "+formatMetadata(r.Metadata),
			fmt.Sprintf("Score: %v", r.Score),
			"---",
		)
	}
	return strings.Join(lines, "\n"), nil
}

func contentOrPlaceholder(content string) string {
	if content == "" {
		return "N/A"
	}
	return content
}

// formatMetadata renders metadata deterministically; fmt sorts map keys.
func formatMetadata(metadata map[string]any) string {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return fmt.Sprintf("%v", metadata)
}
