// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package tool

import (
	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// Action selects the operation a Request performs.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionList   Action = "list"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
)

// DefaultLimit is applied when a request leaves Limit unset.
const DefaultLimit = 10

// Request carries the parameters for one tool invocation. Which optional
// fields are mandatory depends on Action; see Validate.
type Request struct {
	Action         Action         `json:"action"`
	CollectionName string         `json:"collection_name"`
	Content        string         `json:"content,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	PointID        string         `json:"point_id,omitempty"`
	Query          string         `json:"query,omitempty"`
	FilterBy       string         `json:"filter_by,omitempty"`
	FilterValue    string         `json:"filter_value,omitempty"`
	Limit          int            `json:"limit,omitempty"`
}

// normalize fills defaults. Limit zero means unset and takes DefaultLimit;
// a negative limit is left for Validate to reject.
func (r *Request) normalize() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
}

// Validate checks that the fields required by the requested action are
// present. It is a pure check: no store or provider access happens here.
// Unrecognized actions pass validation; the dispatcher answers those with a
// plain message rather than an error.
func (r *Request) Validate() error {
	if r.CollectionName == "" {
		return vecerr.New(vecerr.CodeToolRequestInvalidInput, "collection_name is required")
	}

	if r.Limit <= 0 {
		return vecerr.Errorf(vecerr.CodeToolRequestInvalidInput, "limit must be positive, got %d", r.Limit)
	}

	switch r.Action {
	case ActionAdd, ActionUpdate:
		if r.Content == "" {
			return vecerr.Errorf(vecerr.CodeToolRequestInvalidInput,
				"content is required for %s action", r.Action)
		}
	}

	switch r.Action {
	case ActionUpdate, ActionDelete:
		if r.PointID == "" {
			return vecerr.Errorf(vecerr.CodeToolRequestInvalidInput,
				"point_id is required for %s action", r.Action)
		}
	}

	if r.Action == ActionSearch && r.Query == "" {
		return vecerr.New(vecerr.CodeToolRequestInvalidInput, "query is required for search action")
	}

	return nil
}
