// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package store

import "sync"

// Guard deduplicates ensure-collection work per collection name. The
// exists-then-create sequence against the store is not atomic, so
// implementations run it under the guard: concurrent first-time calls for
// the same name serialize, and later calls return without touching the
// store at all. Only successful runs are cached, so a failed creation is
// retried on the next call.
type Guard struct {
	mu   sync.Mutex
	done map[string]struct{}
}

// Do runs fn once per name. Subsequent calls for a name whose fn succeeded
// are no-ops.
func (g *Guard) Do(name string, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done == nil {
		g.done = make(map[string]struct{})
	}
	if _, ok := g.done[name]; ok {
		return nil
	}

	if err := fn(); err != nil {
		return err
	}

	g.done[name] = struct{}{}
	return nil
}
