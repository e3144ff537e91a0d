// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
package sidebar

import (
	"fmt"
	"testing"
)

type testRow struct {
	key string
}

func rowKey(r testRow) string { return r.key }

func makeRows(n int) []testRow {
	rows := make([]testRow, n)
	for i := range rows {
		rows[i] = testRow{key: fmt.Sprintf("r%03d", i)}
	}
	return rows
}

// =============================================================================
// EMPTY AND UNLAID-OUT STATES
// =============================================================================

func TestWindow_EmptyItems(t *testing.T) {
	w := NewWindow(rowKey, 2, 3)
	w.SetViewportHeight(20)

	if _, _, ok := w.Range(); ok {
		t.Error("empty sequence should yield no materialized range")
	}
	if w.TotalHeight() != 0 {
		t.Errorf("TotalHeight = %d, want 0", w.TotalHeight())
	}
}

func TestWindow_ZeroViewport(t *testing.T) {
	w := NewWindow(rowKey, 2, 3)
	w.SetItems(makeRows(100))

	// Not laid out yet: no spurious full render.
	if _, _, ok := w.Range(); ok {
		t.Error("zero viewport should yield no materialized range")
	}
}

// =============================================================================
// RANGE AND SPACERS
// =============================================================================

func TestWindow_BasicRange(t *testing.T) {
	w := NewWindow(rowKey, 1, 0)
	w.SetItems(makeRows(100))
	w.SetViewportHeight(10)

	first, last, ok := w.Range()
	if !ok {
		t.Fatal("expected a materialized range")
	}
	if first != 0 || last != 9 {
		t.Errorf("range = [%d,%d], want [0,9]", first, last)
	}

	w.SetScrollTop(25)
	first, last, _ = w.Range()
	if first != 25 || last != 34 {
		t.Errorf("range = [%d,%d], want [25,34]", first, last)
	}
}

func TestWindow_Overscan(t *testing.T) {
	w := NewWindow(rowKey, 1, 5)
	w.SetItems(makeRows(100))
	w.SetViewportHeight(10)
	w.SetScrollTop(50)

	first, last, _ := w.Range()
	if first != 45 || last != 64 {
		t.Errorf("range = [%d,%d], want [45,64]", first, last)
	}

	// Overscan clamps at both edges.
	w.SetScrollTop(0)
	first, _, _ = w.Range()
	if first != 0 {
		t.Errorf("first = %d, want 0 at top", first)
	}
	w.SetScrollTop(w.MaxScroll())
	_, last, _ = w.Range()
	if last != 99 {
		t.Errorf("last = %d, want 99 at bottom", last)
	}
}

func TestWindow_SpacersCoverTotalExactly(t *testing.T) {
	w := NewWindow(rowKey, 2, 3)
	w.SetItems(makeRows(200))
	w.SetViewportHeight(17)

	// Vary some heights so the prefix sums are non-uniform.
	w.ObserveHeight("r010", 1)
	w.ObserveHeight("r011", 5)
	w.ObserveHeight("r150", 4)

	total := w.TotalHeight()
	for scroll := 0; scroll <= w.MaxScroll(); scroll++ {
		w.SetScrollTop(scroll)
		first, last, ok := w.Range()
		if !ok {
			t.Fatalf("scroll %d: no range", scroll)
		}
		lead, trail := w.Spacers(first, last)
		sum := lead + trail
		for i := first; i <= last; i++ {
			sum += w.HeightOf(i)
		}
		if sum != total {
			t.Fatalf("scroll %d: lead+rows+trail = %d, want total %d", scroll, sum, total)
		}
		// The materialized slice fully covers the visible pixels.
		if lead > scroll {
			t.Fatalf("scroll %d: leading spacer %d overlaps viewport", scroll, lead)
		}
		if total-trail < scroll+w.ViewportHeight() && last != w.Len()-1 {
			t.Fatalf("scroll %d: trailing spacer %d intrudes into viewport", scroll, trail)
		}
	}
}

// =============================================================================
// HEIGHT CACHE AND KEY STABILITY
// =============================================================================

func TestWindow_ObserveHeightUpdatesOffsets(t *testing.T) {
	w := NewWindow(rowKey, 2, 0)
	w.SetItems(makeRows(10))
	w.SetViewportHeight(6)

	if w.TotalHeight() != 20 {
		t.Fatalf("TotalHeight = %d, want 20", w.TotalHeight())
	}

	w.ObserveHeight("r003", 6)
	if w.TotalHeight() != 24 {
		t.Errorf("TotalHeight = %d, want 24 after observation", w.TotalHeight())
	}
	if w.OffsetOf(4) != 12 {
		t.Errorf("OffsetOf(4) = %d, want 12", w.OffsetOf(4))
	}
}

func TestWindow_HeightsSurviveRecomposition(t *testing.T) {
	w := NewWindow(rowKey, 2, 0)
	w.SetItems([]testRow{{"a"}, {"b"}, {"c"}})
	w.SetViewportHeight(10)
	w.ObserveHeight("b", 7)

	// Insert rows ahead of "b", as a folder expansion would.
	w.SetItems([]testRow{{"a"}, {"x"}, {"y"}, {"b"}, {"c"}})

	if got := w.HeightOf(3); got != 7 {
		t.Errorf("height of persisting key = %d, want 7", got)
	}
	if got := w.HeightOf(1); got != 2 {
		t.Errorf("new row should use the estimate, got %d", got)
	}
}

// =============================================================================
// SCROLL CLAMPING AND CURSOR VISIBILITY
// =============================================================================

func TestWindow_ScrollClamping(t *testing.T) {
	w := NewWindow(rowKey, 1, 0)
	w.SetItems(makeRows(20))
	w.SetViewportHeight(5)

	w.SetScrollTop(-10)
	if w.ScrollTop() != 0 {
		t.Errorf("negative scroll should clamp to 0, got %d", w.ScrollTop())
	}

	w.SetScrollTop(1000)
	if w.ScrollTop() != 15 {
		t.Errorf("overscroll should clamp to %d, got %d", 15, w.ScrollTop())
	}

	// Shrinking the sequence re-clamps.
	w.SetItems(makeRows(6))
	if w.ScrollTop() != 1 {
		t.Errorf("scroll after shrink = %d, want 1", w.ScrollTop())
	}
}

func TestWindow_ScrollIndexIntoView(t *testing.T) {
	w := NewWindow(rowKey, 2, 0)
	w.SetItems(makeRows(50))
	w.SetViewportHeight(10)

	w.ScrollIndexIntoView(20)
	// Bottom edge of row 20 is offset 42; viewport must reach it.
	if got := w.ScrollTop(); got != 32 {
		t.Errorf("scrollTop = %d, want 32", got)
	}

	w.ScrollIndexIntoView(3)
	if got := w.ScrollTop(); got != 6 {
		t.Errorf("scrollTop = %d, want 6", got)
	}

	// Already visible: no movement.
	w.ScrollIndexIntoView(5)
	if got := w.ScrollTop(); got != 6 {
		t.Errorf("scrollTop = %d, want 6 (unchanged)", got)
	}
}

// =============================================================================
// NEAR-END DETECTION
// =============================================================================

func TestWindow_NearEnd(t *testing.T) {
	w := NewWindow(rowKey, 1, 2)
	w.SetItems(makeRows(100))
	w.SetViewportHeight(10)

	if w.NearEnd(5) {
		t.Error("top of list should not be near end")
	}

	w.SetScrollTop(w.MaxScroll())
	if !w.NearEnd(5) {
		t.Error("bottom of list should be near end")
	}

	// Materialized trailing edge at 99-overscan region.
	w.SetScrollTop(80)
	if !w.NearEnd(10) {
		t.Error("within threshold rows of the end should report near end")
	}
	if w.NearEnd(0) {
		t.Error("threshold 0 requires the last row to be materialized")
	}
}
