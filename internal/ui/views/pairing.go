package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitcredit/internal/stats"
)

// PairingView shows who an author co-authors commits with. Solo commits
// show up under their own bucket.
type PairingView struct {
	root  *tview.Flex
	table *tview.Table
	info  *tview.TextView
}

// NewPairingView creates a new pairing view
func NewPairingView() *PairingView {
	v := &PairingView{}
	v.setup()
	return v
}

func (v *PairingView) setup() {
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

func (v *PairingView) renderHeader() {
	for col, name := range []string{"#", "Co-author", "Together", "As driver"} {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh redraws the pairing counts for the author with the given key.
func (v *PairingView) Refresh(table *stats.Table, authorKey string) {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	authorName := authorKey
	if rec, ok := table.Authors[authorKey]; ok {
		authorName = rec.Name
	}

	pairs := table.Pairs(authorKey)
	for i, pair := range pairs {
		row := i + 1

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		name := pair.Partner
		color := tcell.ColorWhite
		if pair.Key == stats.SoloKey {
			color = tcell.ColorDarkGray
		}
		v.table.SetCell(row, 1, tview.NewTableCell(name).
			SetTextColor(color).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", pair.Total)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", pair.AsDriver)).
			SetAlign(tview.AlignRight))
	}

	v.info.SetText(fmt.Sprintf("[green]%s[-] | [yellow]%d[-] co-author buckets", authorName, len(pairs)))
}

// Root returns the root primitive
func (v *PairingView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *PairingView) GetFocusable() tview.Primitive {
	return v.table
}
