// quill TUI - A terminal sidebar for browsing AI chat conversations.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/quillchat/quill-tui/internal/config"
	"github.com/quillchat/quill-tui/internal/model"
	"github.com/quillchat/quill-tui/internal/store"
	"github.com/quillchat/quill-tui/internal/ui/preview"
	uisidebar "github.com/quillchat/quill-tui/internal/ui/sidebar"
	"github.com/quillchat/quill-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for the folder watcher's async sends.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dbPath := flag.String("db", "", "path to conversation database")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quill %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: quill requires an interactive terminal")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config) error {
	// Open the conversation database.
	dbFile, err := cfg.DBPath()
	if err != nil {
		return err
	}
	db, err := store.OpenDB(dbFile)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	st := store.New()
	st.AttachDB(db)

	// Seed pin and archive flags from the database.
	pinned, archived, err := db.Flags(context.Background())
	if err != nil {
		return fmt.Errorf("load flags: %w", err)
	}
	st.SetFlags(pinned, archived)

	// Load the folder document and attach it for write-through.
	foldersFile, err := cfg.FoldersPath()
	if err != nil {
		return err
	}
	ff := store.NewFolderFile(foldersFile)
	folders, err := ff.Load()
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	st.SetFolders(folders)
	st.AttachFolderFile(ff)

	theme := styles.NewTheme()
	m := newAppModel(st, db, cfg, theme)
	defer m.sidebar.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Watch the folder document so external writes show up live.
	if cfg.Storage.WatchFolders {
		w, err := store.NewWatcher(ff,
			func(fs []model.Folder) {
				send(uisidebar.FoldersReloadedMsg{Folders: fs})
			},
			func(err error) {
				send(uisidebar.StatusMsg{Text: fmt.Sprintf("folder watch: %v", err), IsError: true})
			},
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: folder watching disabled: %v\n", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running quill: %w", err)
	}
	return nil
}

// send delivers a message into the running program, if any.
func send(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appModel is the main Bubble Tea model: a sidebar pane and an optional
// markdown preview pane.
type appModel struct {
	theme *styles.Theme
	cfg   *config.Config

	sidebar *uisidebar.Model
	preview *preview.Model

	width  int
	height int
}

func newAppModel(st *store.Store, db *store.DB, cfg *config.Config, theme *styles.Theme) *appModel {
	return &appModel{
		theme:   theme,
		cfg:     cfg,
		sidebar: uisidebar.New(st, db, cfg.Sidebar, theme),
		preview: preview.New(theme),
	}
}

// Init implements tea.Model.
func (m *appModel) Init() tea.Cmd {
	return m.sidebar.Init()
}

// Update implements tea.Model.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		// Global quit keys, unless the sidebar owns the keystroke for a
		// rename or confirmation prompt.
		if !m.sidebar.Capturing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}
		}
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd

	case uisidebar.SelectedMsg:
		conv := msg.Conversation
		m.preview.SetConversation(&conv)
		return m, nil
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return m, cmd
}

// layout splits the window between the sidebar and the preview pane.
func (m *appModel) layout() {
	sbWidth := m.cfg.UI.SidebarWidth
	if !m.cfg.UI.ShowPreview || m.width < sbWidth+20 {
		sbWidth = m.width
	}
	m.sidebar.SetSize(sbWidth, m.height)
	if pw := m.width - sbWidth - 1; pw > 0 {
		m.preview.SetSize(pw, m.height)
	}
}

// View implements tea.Model.
func (m *appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	sb := m.sidebar.View()
	if !m.cfg.UI.ShowPreview || m.width < m.cfg.UI.SidebarWidth+20 {
		return sb
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Sidebar.Render(sb),
		m.preview.View(),
	)
}
