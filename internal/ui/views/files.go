package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitcredit/internal/stats"
)

// FilesView displays the per-file credit breakdown for one author
type FilesView struct {
	root     *tview.Flex
	table    *tview.Table
	info     *tview.TextView
	maxFiles int
}

// NewFilesView creates a new files view
func NewFilesView(maxFiles int) *FilesView {
	v := &FilesView{maxFiles: maxFiles}
	v.setup()
	return v
}

func (v *FilesView) setup() {
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

func (v *FilesView) renderHeader() {
	for col, name := range []string{"#", "File", "+Lines", "-Lines", "Total"} {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh redraws the breakdown for the author with the given canonical key.
func (v *FilesView) Refresh(table *stats.Table, authorKey string) {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	authorName := authorKey
	if rec, ok := table.Authors[authorKey]; ok {
		authorName = rec.Name
	}

	files := table.AuthorFiles(authorKey)
	total := len(files)
	if v.maxFiles > 0 && len(files) > v.maxFiles {
		files = files[:v.maxFiles]
	}

	for i, file := range files {
		row := i + 1

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		name := file.Path
		if file.Binary {
			name += " [gray](binary)[-]"
		}
		v.table.SetCell(row, 1, tview.NewTableCell(name).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("+%d", file.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("-%d", file.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", file.Insertions+file.Deletions)).
			SetAlign(tview.AlignRight))
	}

	v.info.SetText(fmt.Sprintf("[green]%s[-] | [yellow]%d[-] files touched", authorName, total))
}

// Root returns the root primitive
func (v *FilesView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *FilesView) GetFocusable() tview.Primitive {
	return v.table
}
