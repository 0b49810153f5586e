package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitcredit/internal/config"
	"github.com/audi70r/gitcredit/internal/engine"
	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/stats"
	"github.com/audi70r/gitcredit/internal/ui/views"
)

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	config *config.Config
	source git.Source
	table  *stats.Table

	progressView *views.ProgressView
	mainView     *MainView

	cancelBuild context.CancelFunc
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, src git.Source) *App {
	app := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		config: cfg,
		source: src,
	}

	app.setupViews()
	return app
}

func (a *App) setupViews() {
	a.progressView = views.NewProgressView()
	a.mainView = NewMainView(a.tview, a.config, a.onRescan)

	progressRoot := a.progressView.Root()

	// Esc cancels a running build. The engine discards partial results;
	// nothing is shown.
	wrapped := tview.NewFlex().AddItem(progressRoot, 0, 1, true)
	wrapped.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc && a.cancelBuild != nil {
			a.cancelBuild()
			return nil
		}
		return event
	})

	a.pages.AddPage("progress", wrapped, true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	a.tview.SetRoot(a.pages, true)
}

func (a *App) startBuild() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelBuild = cancel

	a.pages.SwitchToPage("progress")
	a.progressView.SetStatus(fmt.Sprintf("Walking %s...", filepath.Base(a.config.RepoPath)))

	opts := engine.Options{
		Ref:        a.config.Ref,
		Since:      a.config.Since,
		Until:      a.config.Until,
		PathPrefix: a.config.PathPrefix,
		Aliases:    a.config.Identities.Aliases,
		OnProgress: func(p git.ScanProgress) {
			a.tview.QueueUpdateDraw(func() {
				if p.Collecting {
					a.progressView.SetStatus(fmt.Sprintf("Reading history (%d commits)...", p.TotalEstimate))
					return
				}
				a.progressView.SetProgress(p.CommitsWalked, p.TotalEstimate)
				if p.CurrentHash != "" {
					a.progressView.SetStatus("Processing " + p.CurrentHash + "...")
				}
			})
		},
	}

	go func() {
		table, err := engine.Build(ctx, a.source, a.config.RepoPath, opts)
		cancel()

		if err != nil {
			if errors.Is(err, context.Canceled) {
				a.tview.QueueUpdateDraw(func() {
					a.tview.Stop()
				})
				return
			}
			a.tview.QueueUpdateDraw(func() {
				a.showError(err)
			})
			return
		}

		a.tview.QueueUpdateDraw(func() {
			a.table = table
			a.mainView.SetData(table)
			a.pages.SwitchToPage("main")
			a.tview.SetFocus(a.mainView.GetFocusable())
		})
	}()
}

func (a *App) showError(err error) {
	modal := tview.NewModal().
		SetText("Build failed:\n\n" + err.Error()).
		AddButtons([]string{"Quit"}).
		SetDoneFunc(func(int, string) {
			a.tview.Stop()
		})
	a.pages.AddPage("error", modal, true, true)
}

func (a *App) onRescan() {
	a.startBuild()
}

// Run starts the application
func (a *App) Run() error {
	a.startBuild()
	return a.tview.Run()
}

// MainView is the main statistics display view
type MainView struct {
	root       *tview.Flex
	outerPages *tview.Pages
	menuList   *tview.List
	viewPages  *tview.Pages
	searchBar  *tview.InputField
	statusBar  *tview.TextView
	header     *tview.TextView
	scopeForm  *tview.Form
	app        *tview.Application
	config     *config.Config
	onRescan   func()

	leaderboardView *views.LeaderboardView
	filesView       *views.FilesView
	pairingView     *views.PairingView
	hotPathsView    *views.HotPathsView

	currentView   string
	currentAuthor string
	table         *stats.Table
}

// NewMainView creates the main statistics view
func NewMainView(app *tview.Application, cfg *config.Config, onRescan func()) *MainView {
	m := &MainView{
		app:      app,
		config:   cfg,
		onRescan: onRescan,
	}

	m.setupLayout()
	return m
}

func (m *MainView) setupLayout() {
	m.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.header.SetBackgroundColor(tcell.ColorDarkBlue)

	m.menuList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	m.menuList.SetBorder(true).SetTitle(" Views ")

	menuItems := []struct {
		name     string
		shortcut rune
	}{
		{"Leaderboard", '1'},
		{"Files", '2'},
		{"Pairing", '3'},
		{"Hot Paths", '4'},
	}

	for _, item := range menuItems {
		name := item.name
		m.menuList.AddItem(item.name, "", item.shortcut, func() {
			m.switchView(name)
		})
	}

	m.viewPages = tview.NewPages()
	m.viewPages.SetBorder(true)

	m.leaderboardView = views.NewLeaderboardView(
		m.config.Display.MaxAuthors,
		m.onAuthorSelected,
	)
	m.filesView = views.NewFilesView(m.config.Display.MaxFiles)
	m.pairingView = views.NewPairingView()
	m.hotPathsView = views.NewHotPathsView(m.config.Display.MaxFiles)

	m.viewPages.AddPage("Leaderboard", m.leaderboardView.Root(), true, true)
	m.viewPages.AddPage("Files", m.filesView.Root(), true, false)
	m.viewPages.AddPage("Pairing", m.pairingView.Root(), true, false)
	m.viewPages.AddPage("Hot Paths", m.hotPathsView.Root(), true, false)

	m.currentView = "Leaderboard"
	m.viewPages.SetTitle(" Leaderboard ")

	m.searchBar = tview.NewInputField().
		SetLabel(" / ").
		SetFieldWidth(0)
	m.searchBar.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEsc {
			m.searchBar.SetText("")
		}
		m.leaderboardView.SetFilter(m.searchBar.GetText())
		m.leaderboardView.Refresh(m.table)
		m.app.SetFocus(m.leaderboardView.GetFocusable())
	})

	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)
	m.updateStatusBar()

	contentFlex := tview.NewFlex().
		AddItem(m.menuList, 18, 0, true).
		AddItem(m.viewPages, 0, 1, false)

	m.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(contentFlex, 0, 1, true).
		AddItem(m.searchBar, 1, 0, false).
		AddItem(m.statusBar, 1, 0, false)

	m.root.SetInputCapture(m.handleInput)

	m.scopeForm = tview.NewForm()
	m.scopeForm.
		AddInputField("Since (YYYY-MM-DD)", "", 14, nil, nil).
		AddInputField("Until (YYYY-MM-DD)", "", 14, nil, nil).
		AddButton("Rescan", m.applyScope).
		AddButton("Cancel", m.closeScope)
	m.scopeForm.SetBorder(true).SetTitle(" Scan Range ")
	m.scopeForm.SetCancelFunc(m.closeScope)

	scopeModal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(m.scopeForm, 9, 0, true).
			AddItem(nil, 0, 1, false), 44, 0, true).
		AddItem(nil, 0, 1, false)

	m.outerPages = tview.NewPages()
	m.outerPages.AddPage("content", m.root, true, true)
	m.outerPages.AddPage("scope", scopeModal, true, false)
}

// openScope shows the date-range form, pre-filled with the current scope.
func (m *MainView) openScope() {
	setField := func(i int, t time.Time) {
		text := ""
		if !t.IsZero() {
			text = t.Format("2006-01-02")
		}
		m.scopeForm.GetFormItem(i).(*tview.InputField).SetText(text)
	}
	setField(0, m.config.Since)
	setField(1, m.config.Until)

	m.scopeForm.SetTitle(" Scan Range ")
	m.scopeForm.SetFocus(0)
	m.outerPages.ShowPage("scope")
	m.app.SetFocus(m.scopeForm)
}

func (m *MainView) applyScope() {
	since, err := parseRangeField(m.scopeForm.GetFormItem(0).(*tview.InputField).GetText())
	if err != nil {
		m.scopeForm.SetTitle(" Scan Range (invalid since date) ")
		return
	}
	until, err := parseRangeField(m.scopeForm.GetFormItem(1).(*tview.InputField).GetText())
	if err != nil {
		m.scopeForm.SetTitle(" Scan Range (invalid until date) ")
		return
	}

	m.config.Since = since
	m.config.Until = until
	m.closeScope()
	if m.onRescan != nil {
		m.onRescan()
	}
}

func (m *MainView) closeScope() {
	m.outerPages.HidePage("scope")
	m.app.SetFocus(m.menuList)
}

// parseRangeField parses one form date; empty means no bound.
func parseRangeField(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func (m *MainView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if m.app.GetFocus() == m.searchBar {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		m.toggleFocus()
		return nil
	case tcell.KeyEsc:
		if m.app.GetFocus() != m.menuList {
			m.app.SetFocus(m.menuList)
			return nil
		}
	}

	switch event.Rune() {
	case 'q', 'Q':
		m.app.Stop()
		return nil
	case 'R':
		m.openScope()
		return nil
	case 's':
		if m.currentView == "Leaderboard" {
			m.leaderboardView.CycleSortColumn()
			m.leaderboardView.Refresh(m.table)
		}
		return nil
	case 'r':
		if m.currentView == "Leaderboard" {
			m.leaderboardView.ReverseSortOrder()
			m.leaderboardView.Refresh(m.table)
		}
		return nil
	case '/':
		m.switchView("Leaderboard")
		m.app.SetFocus(m.searchBar)
		return nil
	}

	return event
}

func (m *MainView) toggleFocus() {
	if m.app.GetFocus() == m.menuList {
		switch m.currentView {
		case "Leaderboard":
			m.app.SetFocus(m.leaderboardView.GetFocusable())
		case "Files":
			m.app.SetFocus(m.filesView.GetFocusable())
		case "Pairing":
			m.app.SetFocus(m.pairingView.GetFocusable())
		case "Hot Paths":
			m.app.SetFocus(m.hotPathsView.GetFocusable())
		}
	} else {
		m.app.SetFocus(m.menuList)
	}
}

func (m *MainView) onAuthorSelected(key string) {
	m.currentAuthor = key
	if m.table == nil {
		return
	}
	m.filesView.Refresh(m.table, key)
	m.pairingView.Refresh(m.table, key)
}

func (m *MainView) switchView(name string) {
	m.currentView = name
	m.viewPages.SwitchToPage(name)
	m.viewPages.SetTitle(" " + name + " ")
	m.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (m *MainView) updateStatusBar() {
	baseControls := "[yellow]Tab[-] Focus  [yellow]↑↓[-] Navigate  [yellow]R[-] Scan Range  [yellow]q[-] Quit"

	var viewControls string
	switch m.currentView {
	case "Leaderboard":
		viewControls = "[yellow]s[-] Sort  [yellow]r[-] Reverse  [yellow]/[-] Filter  "
	default:
		viewControls = ""
	}

	m.statusBar.SetText(viewControls + baseControls)
}

// SetData updates all views with a freshly built table
func (m *MainView) SetData(table *stats.Table) {
	m.table = table

	repoName := filepath.Base(table.Scope.RepoPath)
	scope := ""
	if !table.Scope.Since.IsZero() || !table.Scope.Until.IsZero() {
		scope = fmt.Sprintf(" (%s to %s)",
			formatDate(table.Scope.Since), formatDate(table.Scope.Until))
	}
	warnings := ""
	if n := len(table.Warnings); n > 0 {
		warnings = fmt.Sprintf(" - [red]%d warnings[-]", n)
	}
	m.header.SetText(fmt.Sprintf("[::b]gitcredit[-:-:-] - %s%s - %d commits by %d authors%s",
		repoName, scope, table.TotalCommits, len(table.Authors), warnings))

	m.leaderboardView.Refresh(table)
	m.hotPathsView.Refresh(table)
	if m.currentAuthor != "" {
		m.filesView.Refresh(table, m.currentAuthor)
		m.pairingView.Refresh(table, m.currentAuthor)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "..."
	}
	return t.Format("2006-01-02")
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.outerPages
}

// GetFocusable returns the focusable component
func (m *MainView) GetFocusable() tview.Primitive {
	return m.menuList
}
