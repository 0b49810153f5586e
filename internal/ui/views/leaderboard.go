package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitcredit/internal/stats"
)

var leaderboardSortKeys = []stats.SortKey{
	stats.ByCommits,
	stats.ByInsertions,
	stats.ByDeletions,
	stats.ByFiles,
}

// LeaderboardView displays the contributor leaderboard
type LeaderboardView struct {
	root       *tview.Flex
	table      *tview.Table
	info       *tview.TextView
	sortIdx    int
	sortAsc    bool
	filter     string
	maxAuthors int
	rows       []*stats.Contribution
	onSelect   func(key string)
}

// NewLeaderboardView creates a new leaderboard view. onSelect is called with
// the canonical key of the highlighted author whenever it changes.
func NewLeaderboardView(maxAuthors int, onSelect func(key string)) *LeaderboardView {
	v := &LeaderboardView{
		maxAuthors: maxAuthors,
		onSelect:   onSelect,
	}
	v.setup()
	return v
}

func (v *LeaderboardView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.table.SetSelectionChangedFunc(func(row, col int) {
		idx := row - 1
		if idx >= 0 && idx < len(v.rows) && v.onSelect != nil {
			v.onSelect(v.rows[idx].Key)
		}
	})

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)
}

func (v *LeaderboardView) columns() []string {
	return []string{"#", "Author", "Commits", "Insertions", "Deletions", "Net", "Files"}
}

// sortColumn maps the active sort key to its table column.
func (v *LeaderboardView) sortColumn() int {
	switch leaderboardSortKeys[v.sortIdx] {
	case stats.ByCommits:
		return 2
	case stats.ByInsertions:
		return 3
	case stats.ByDeletions:
		return 4
	case stats.ByFiles:
		return 6
	}
	return 2
}

func (v *LeaderboardView) renderHeader() {
	for col, name := range v.columns() {
		cell := tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)

		if col == v.sortColumn() {
			arrow := "▼"
			if v.sortAsc {
				arrow = "▲"
			}
			cell.SetText(name + arrow)
		}

		v.table.SetCell(0, col, cell)
	}
}

// Refresh re-queries and redraws. Sorting and filtering happen on the query
// surface; the repository is never re-read.
func (v *LeaderboardView) Refresh(table *stats.Table) {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	key := leaderboardSortKeys[v.sortIdx]
	authors := table.Leaderboard(key, v.sortAsc, v.filter)
	total := len(authors)
	if v.maxAuthors > 0 && len(authors) > v.maxAuthors {
		authors = authors[:v.maxAuthors]
	}
	v.rows = authors

	for i, author := range authors {
		row := i + 1
		net := author.Insertions - author.Deletions

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 1, tview.NewTableCell(author.Name).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", author.Commits)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("+%d", author.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("-%d", author.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))

		netColor := tcell.ColorWhite
		if net > 0 {
			netColor = tcell.ColorGreen
		} else if net < 0 {
			netColor = tcell.ColorRed
		}
		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%+d", net)).
			SetTextColor(netColor).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 6, tview.NewTableCell(fmt.Sprintf("%d", author.FilesTouched)).
			SetAlign(tview.AlignRight))
	}

	filterNote := ""
	if v.filter != "" {
		filterNote = fmt.Sprintf(" | Filter: [green]%s[-]", v.filter)
	}
	v.info.SetText(fmt.Sprintf("[yellow]%d[-] authors%s | Sort: [green]%s[-] | [s] cycle, [r] reverse, [/] filter",
		total, filterNote, key))

	v.renderHeader()

	if len(v.rows) > 0 {
		v.table.Select(1, 0)
		if v.onSelect != nil {
			v.onSelect(v.rows[0].Key)
		}
	}
}

// SetFilter sets the author-name substring filter.
func (v *LeaderboardView) SetFilter(filter string) {
	v.filter = filter
}

// CycleSortColumn cycles through sort keys
func (v *LeaderboardView) CycleSortColumn() {
	v.sortIdx = (v.sortIdx + 1) % len(leaderboardSortKeys)
}

// ReverseSortOrder reverses the sort order
func (v *LeaderboardView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
}

// Root returns the root primitive
func (v *LeaderboardView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *LeaderboardView) GetFocusable() tview.Primitive {
	return v.table
}
