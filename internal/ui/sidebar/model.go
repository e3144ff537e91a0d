// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation sidebar component for the TUI.
package sidebar

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/quillchat/quill-tui/internal/config"
	"github.com/quillchat/quill-tui/internal/model"
	core "github.com/quillchat/quill-tui/internal/sidebar"
	"github.com/quillchat/quill-tui/internal/store"
	"github.com/quillchat/quill-tui/internal/ui/styles"
)

// Pager serves one page of conversations at a time, newest first.
// *store.DB satisfies it; tests substitute fakes.
type Pager interface {
	ListPage(ctx context.Context, limit, offset int) ([]model.Conversation, error)
}

// inputMode is the sidebar's modal state. Normal mode handles navigation and
// mutation intents; the other modes capture keys for their prompt.
type inputMode int

const (
	modeNormal inputMode = iota
	modeRename
	modeConfirmDelete
	modeMove
)

// =============================================================================
// SIDEBAR MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation sidebar.
type Model struct {
	store *store.Store
	pager Pager
	cfg   config.SidebarConfig
	theme *styles.Theme
	keys  KeyMap

	// Render state, never domain truth.
	expanded model.IDSet
	project  *model.Project
	pinned   model.IDSet // copy of the last snapshot's pin set, for row markers

	items  []core.Item
	win    *core.Window[core.Item]
	loader *core.Loader

	cursor int

	spinner     spinner.Model
	renameInput textinput.Model

	mode     inputMode
	actionID string // conversation the pending rename/delete/move applies to

	moveFolders []model.Folder
	moveIndex   int // index into moveFolders; len(moveFolders) means "unfiled"

	statusMsg string
	statusErr bool

	width  int
	height int
}

// New creates a sidebar component over the given store and pager.
func New(st *store.Store, pager Pager, cfg config.SidebarConfig, theme *styles.Theme) *Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.ShortcutKey),
	)

	ti := textinput.New()
	ti.Prompt = "rename: "
	ti.CharLimit = 200

	var loader *core.Loader
	if cfg.LoadRatePerSec > 0 {
		loader = core.NewLoaderWithLimit(rate.Limit(cfg.LoadRatePerSec), 1)
	} else {
		loader = core.NewLoader()
	}

	return &Model{
		store:       st,
		pager:       pager,
		cfg:         cfg,
		theme:       theme,
		keys:        DefaultKeyMap(),
		expanded:    model.NewIDSet(),
		win:         core.NewWindow(core.ItemKey, cfg.EstimatedRowHeight, cfg.Overscan),
		loader:      loader,
		spinner:     sp,
		renameInput: ti,
	}
}

// Init starts the spinner and requests the first page.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.loader.Notify() {
		cmds = append(cmds, m.loadPageCmd())
	}
	return tea.Batch(cmds...)
}

// SetSize lays out the sidebar. One line is reserved for the status line.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	vp := height - 1
	if vp < 0 {
		vp = 0
	}
	m.win.SetViewportHeight(vp)
	m.renameInput.Width = width - 10
}

// Selected returns the conversation under the cursor, if any.
func (m *Model) Selected() (model.Conversation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.Conversation{}, false
	}
	if row, ok := m.items[m.cursor].(core.ConversationRow); ok {
		return row.Conversation, true
	}
	return model.Conversation{}, false
}

// Loading reports whether a page load is in flight.
func (m *Model) Loading() bool { return m.loader.Loading() }

// Capturing reports whether the sidebar is in a modal prompt and therefore
// owns every keystroke, including keys the parent would treat as global.
func (m *Model) Capturing() bool { return m.mode != modeNormal }

// Close releases the incremental loader.
func (m *Model) Close() { m.loader.Close() }

// =============================================================================
// COMPOSITION
// =============================================================================

// recompose rebuilds the item sequence from a fresh store snapshot. The
// cursor follows its item key when the item survives the change.
func (m *Model) recompose() {
	var prevKey string
	if m.cursor >= 0 && m.cursor < len(m.items) {
		prevKey = m.items[m.cursor].Key()
	}

	snap := m.store.Snapshot()
	m.pinned = snap.Pinned
	m.items = core.Compose(core.Inputs{
		Conversations: snap.Conversations,
		Folders:       snap.Folders,
		Pinned:        snap.Pinned,
		Archived:      snap.Archived,
		Expanded:      m.expanded,
		Project:       m.project,
	})
	m.win.SetItems(m.items)

	if prevKey != "" {
		for i, it := range m.items {
			if it.Key() == prevKey {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
	m.win.ScrollIndexIntoView(m.cursor)
}

// clampCursor keeps the cursor on a selectable row. Section headers are
// skipped; folder headers and conversation rows are selectable.
func (m *Model) clampCursor() {
	n := len(m.items)
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
	if !selectable(m.items[m.cursor]) {
		// Prefer the next selectable row, falling back to the previous one.
		for i := m.cursor + 1; i < n; i++ {
			if selectable(m.items[i]) {
				m.cursor = i
				return
			}
		}
		for i := m.cursor - 1; i >= 0; i-- {
			if selectable(m.items[i]) {
				m.cursor = i
				return
			}
		}
	}
}

func selectable(it core.Item) bool {
	switch it.(type) {
	case core.Section:
		return false
	default:
		return true
	}
}

// =============================================================================
// PAGING
// =============================================================================

// loadPageCmd fetches the next page asynchronously. The offset is captured
// before the command runs so replayed messages cannot skip rows.
func (m *Model) loadPageCmd() tea.Cmd {
	pager := m.pager
	limit := m.cfg.PageSize
	offset := m.store.Len()
	return func() tea.Msg {
		convs, err := pager.ListPage(context.Background(), limit, offset)
		return pageLoadedMsg{
			convs:   convs,
			hasMore: err == nil && len(convs) == limit,
			err:     err,
		}
	}
}

// maybeLoadMore starts the next page load when the window is near the end of
// the sequence. A project filter pins the view to already-loaded data.
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.project != nil {
		return nil
	}
	if !m.win.NearEnd(m.cfg.EndReachedThreshold) {
		return nil
	}
	if !m.loader.Notify() {
		return nil
	}
	return m.loadPageCmd()
}
