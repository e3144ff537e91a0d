// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
package sidebar

import "sort"

// =============================================================================
// WINDOWED RENDERER
// =============================================================================

// Window computes the bounded slice of an item sequence that must be
// materialized for the current scroll position, plus the spacer heights that
// make scrolling behave as if every row were rendered.
//
// Heights are cached per item key, never per index. Until a row's real
// rendered height is observed the estimate is used; section headers,
// conversation rows, and wrapped folder children may all differ. Cached
// heights survive recomposition for keys that persist across the change.
//
// Scroll-position lookups are O(log n): cumulative-height prefix sums are
// maintained lazily from the first stale index, and the visible range is
// found by binary search.
type Window[T any] struct {
	keyFn    func(T) string
	estimate int
	overscan int

	items []T
	keys  []string
	index map[string]int

	heights map[string]int
	// offsets[i] is the cumulative height of items[0:i]; len(items)+1 entries.
	offsets   []int
	dirtyFrom int // first index whose offsets entry is stale

	scrollTop int
	viewport  int
}

// NewWindow creates a windowed renderer. estimatedHeight is the default row
// height until a real height is observed; overscan is the number of extra
// rows materialized on each side of the visible range.
func NewWindow[T any](keyFn func(T) string, estimatedHeight, overscan int) *Window[T] {
	if estimatedHeight < 1 {
		estimatedHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	return &Window[T]{
		keyFn:    keyFn,
		estimate: estimatedHeight,
		overscan: overscan,
		heights:  make(map[string]int),
	}
}

// =============================================================================
// INPUT UPDATES
// =============================================================================

// SetItems replaces the item sequence. The height cache is keyed by item
// key, so rows that persist across the change keep their observed heights.
func (w *Window[T]) SetItems(items []T) {
	w.items = items
	w.keys = make([]string, len(items))
	w.index = make(map[string]int, len(items))
	for i, it := range items {
		k := w.keyFn(it)
		w.keys[i] = k
		w.index[k] = i
	}
	w.dirtyFrom = 0
	w.clampScroll()
}

// SetViewportHeight sets the visible height in the same units as row
// heights. A zero or negative viewport yields an empty materialized range.
func (w *Window[T]) SetViewportHeight(h int) {
	w.viewport = h
	w.clampScroll()
}

// SetScrollTop positions the top of the viewport, clamped to the scrollable
// range.
func (w *Window[T]) SetScrollTop(y int) {
	w.scrollTop = y
	w.clampScroll()
}

// ScrollBy moves the viewport by delta (positive scrolls down).
func (w *Window[T]) ScrollBy(delta int) {
	w.SetScrollTop(w.scrollTop + delta)
}

// ObserveHeight records an item's real rendered height, replacing the
// estimate for that key. Later offsets are recomputed lazily.
func (w *Window[T]) ObserveHeight(key string, h int) {
	if h < 1 || w.heights[key] == h {
		return
	}
	w.heights[key] = h
	if i, ok := w.index[key]; ok && i < w.dirtyFrom {
		w.dirtyFrom = i
	}
	w.clampScroll()
}

// =============================================================================
// WINDOW QUERIES
// =============================================================================

// Range returns the materialized index range [first, last] including
// overscan. ok is false when nothing should be materialized: an empty
// sequence (the caller shows its empty state instead) or a viewport that has
// not been laid out yet.
func (w *Window[T]) Range() (first, last int, ok bool) {
	n := len(w.items)
	if n == 0 || w.viewport <= 0 {
		return 0, -1, false
	}
	w.ensureOffsets()

	// First index whose bottom edge is below the viewport top.
	first = sort.Search(n, func(i int) bool { return w.offsets[i+1] > w.scrollTop })
	if first >= n {
		first = n - 1
	}

	// Last index whose top edge is above the viewport bottom.
	bottom := w.scrollTop + w.viewport
	last = sort.Search(n, func(i int) bool { return w.offsets[i] >= bottom }) - 1
	if last < first {
		last = first
	}

	first -= w.overscan
	if first < 0 {
		first = 0
	}
	last += w.overscan
	if last > n-1 {
		last = n - 1
	}
	return first, last, true
}

// Spacers returns the leading and trailing spacer heights for a materialized
// range, such that leading + materialized heights + trailing equals
// TotalHeight exactly.
func (w *Window[T]) Spacers(first, last int) (leading, trailing int) {
	if len(w.items) == 0 || last < first {
		return 0, 0
	}
	w.ensureOffsets()
	return w.offsets[first], w.offsets[len(w.items)] - w.offsets[last+1]
}

// TotalHeight returns the sum of all (estimated or measured) item heights.
func (w *Window[T]) TotalHeight() int {
	if len(w.items) == 0 {
		return 0
	}
	w.ensureOffsets()
	return w.offsets[len(w.items)]
}

// HeightOf returns the current (observed or estimated) height for an index.
func (w *Window[T]) HeightOf(i int) int {
	return w.heightAt(i)
}

// OffsetOf returns the cumulative height above the item at index i.
func (w *Window[T]) OffsetOf(i int) int {
	w.ensureOffsets()
	return w.offsets[i]
}

// ScrollTop returns the current viewport top offset.
func (w *Window[T]) ScrollTop() int { return w.scrollTop }

// ViewportHeight returns the configured viewport height.
func (w *Window[T]) ViewportHeight() int { return w.viewport }

// Len returns the number of items in the sequence.
func (w *Window[T]) Len() int { return len(w.items) }

// ItemAt returns the item at index i.
func (w *Window[T]) ItemAt(i int) T { return w.items[i] }

// KeyAt returns the key of the item at index i.
func (w *Window[T]) KeyAt(i int) string { return w.keys[i] }

// MaxScroll returns the largest valid scroll-top offset.
func (w *Window[T]) MaxScroll() int {
	max := w.TotalHeight() - w.viewport
	if max < 0 {
		return 0
	}
	return max
}

// NearEnd reports whether the materialized window's trailing edge is within
// threshold rows of the end of the sequence. This is the incremental
// loader's trigger condition.
func (w *Window[T]) NearEnd(threshold int) bool {
	_, last, ok := w.Range()
	if !ok {
		return false
	}
	return last >= len(w.items)-1-threshold
}

// ScrollIndexIntoView adjusts the scroll offset by the minimum amount that
// makes the item at index i fully visible.
func (w *Window[T]) ScrollIndexIntoView(i int) {
	if i < 0 || i >= len(w.items) || w.viewport <= 0 {
		return
	}
	w.ensureOffsets()
	top := w.offsets[i]
	bottom := w.offsets[i+1]
	if top < w.scrollTop {
		w.SetScrollTop(top)
	} else if bottom > w.scrollTop+w.viewport {
		w.SetScrollTop(bottom - w.viewport)
	}
}

// =============================================================================
// INTERNAL BOOKKEEPING
// =============================================================================

func (w *Window[T]) heightAt(i int) int {
	if h, ok := w.heights[w.keys[i]]; ok {
		return h
	}
	return w.estimate
}

// ensureOffsets recomputes prefix sums from the first stale index. Clean
// state is marked with dirtyFrom past the end.
func (w *Window[T]) ensureOffsets() {
	n := len(w.items)
	if len(w.offsets) != n+1 {
		w.offsets = make([]int, n+1)
		w.dirtyFrom = 0
	}
	if w.dirtyFrom > n {
		return
	}
	for i := w.dirtyFrom; i < n; i++ {
		w.offsets[i+1] = w.offsets[i] + w.heightAt(i)
	}
	w.dirtyFrom = n + 1
}

func (w *Window[T]) clampScroll() {
	if w.scrollTop < 0 {
		w.scrollTop = 0
		return
	}
	if max := w.MaxScroll(); w.scrollTop > max {
		w.scrollTop = max
	}
}
