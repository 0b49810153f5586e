package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitcredit/internal/stats"
)

// HotPathsView displays the files with the most line churn across all
// authors.
type HotPathsView struct {
	root     *tview.Flex
	table    *tview.Table
	info     *tview.TextView
	maxFiles int
}

// NewHotPathsView creates a new hot paths view
func NewHotPathsView(maxFiles int) *HotPathsView {
	v := &HotPathsView{maxFiles: maxFiles}
	v.setup()
	return v
}

func (v *HotPathsView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.renderHeader()
}

func (v *HotPathsView) renderHeader() {
	for col, name := range []string{"#", "File", "Authors", "+Lines", "-Lines", "Total"} {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh redraws the repository-wide churn breakdown.
func (v *HotPathsView) Refresh(table *stats.Table) {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	paths := table.HotPaths()
	total := len(paths)
	if v.maxFiles > 0 && len(paths) > v.maxFiles {
		paths = paths[:v.maxFiles]
	}

	for i, p := range paths {
		row := i + 1

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		name := p.Path
		if p.Binary {
			name += " [gray](binary)[-]"
		}
		v.table.SetCell(row, 1, tview.NewTableCell(name).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", p.Authors)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("+%d", p.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("-%d", p.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%d", p.Insertions+p.Deletions)).
			SetAlign(tview.AlignRight))
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] files changed in scope", total))
}

// Root returns the root primitive
func (v *HotPathsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *HotPathsView) GetFocusable() tview.Primitive {
	return v.table
}
