// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
package sidebar

import (
	"sync"

	"golang.org/x/time/rate"
)

// =============================================================================
// INCREMENTAL LOADER
// =============================================================================

// Loader gates incremental load-more requests. Near-end scroll notifications
// may arrive many times per second during a scroll gesture; the loader
// guarantees at most one in-flight load at any time, and a new load may only
// start after the previous completion (success or error) has been observed.
//
// The loader does not perform the load itself: when Notify returns true the
// caller starts the asynchronous fetch and reports the outcome through
// Complete. A load error resets the in-flight flag so the next near-end
// scroll can retry; the error itself is surfaced by the caller, never
// retried here.
type Loader struct {
	mu      sync.Mutex
	loading bool
	hasMore bool
	closed  bool
	limiter *rate.Limiter
}

// NewLoader creates a loader that assumes more data exists until told
// otherwise.
func NewLoader() *Loader {
	return &Loader{hasMore: true}
}

// NewLoaderWithLimit creates a loader that additionally rate-limits load
// starts, guarding against notify storms across rapid complete/notify
// cycles. A denied token leaves the loader idle; the next notification may
// still start the load.
func NewLoaderWithLimit(r rate.Limit, burst int) *Loader {
	return &Loader{hasMore: true, limiter: rate.NewLimiter(r, burst)}
}

// Notify signals that the scroll position is near the end of the sequence.
// It returns true exactly when the caller should start a load: there is more
// data, no load is in flight, and the loader is not closed. Safe to call at
// any frequency.
func (l *Loader) Notify() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.loading || !l.hasMore {
		return false
	}
	if l.limiter != nil && !l.limiter.Allow() {
		return false
	}
	l.loading = true
	return true
}

// Complete records the outcome of the in-flight load. On success, hasMore
// updates to the reported value; on error, hasMore is left untouched so a
// later scroll can retry. Completions after Close are ignored.
func (l *Loader) Complete(hasMore bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.loading = false
	if err == nil {
		l.hasMore = hasMore
	}
}

// Loading reports whether a load is in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// HasMore reports whether more data is believed to exist.
func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// SetHasMore overrides the has-more flag, e.g. after a full refresh.
func (l *Loader) SetHasMore(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasMore = v
}

// Close tears the loader down. Subsequent notifications return false and
// in-flight completions are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.loading = false
}
