package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/inventory/internal/model"
)

var columns = []string{"ID", "Name", "Category", "Qty", "Price", "Total"}

const maxCell = 40

// Money formats a currency amount with two decimals.
func Money(v float64) string { return fmt.Sprintf("%.2f", v) }

// Row is the display form of one item, in column order.
func Row(it model.Item) []string {
	return []string{
		strconv.FormatInt(it.ID, 10),
		truncate(it.Name, maxCell),
		truncate(it.Category, maxCell),
		strconv.Itoa(it.Quantity),
		Money(it.Price),
		Money(it.TotalValue()),
	}
}

// SummaryLine is the one-line header shared by `ls`, `search` and the TUI.
func SummaryLine(s model.Summary) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %s",
		C(t.Title, "Inventory"),
		C(t.Accent, "items"), s.Items,
		C(t.Accent, "units"), s.Units,
		C(t.Accent, "value"), Money(s.Value),
	)
}

// ItemLines renders items as aligned text columns. Numeric columns are
// right-aligned; items with no stock get a marker.
func ItemLines(items []model.Item) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no items")}
	}

	rows := make([][]string, 0, len(items))
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, it := range items {
		r := Row(it)
		for i, cell := range r {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, r)
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, "  "+C(t.Accent, joinCells(columns, widths)))
	out = append(out, C(t.Muted, "  "+strings.Repeat(t.H, sum(widths)+2*(len(widths)-1))))
	for i, r := range rows {
		marker := " "
		if items[i].Quantity == 0 {
			marker = C(t.Warn, t.SymEmpty)
		}
		line := joinCells(r, widths)
		idw := widths[0]
		out = append(out, marker+" "+C(t.Muted, line[:idw])+line[idw:])
	}
	return out
}

// joinCells pads every cell to its column width; the first three columns
// are left-aligned text, the rest right-aligned numbers.
func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		gap := strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		if i < 3 {
			parts[i] = c + gap
		} else {
			parts[i] = gap + c
		}
	}
	return strings.Join(parts, "  ")
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// ItemDetail renders one item as labelled lines.
func ItemDetail(it model.Item) []string {
	t := Current()
	category := it.Category
	if category == "" {
		category = C(t.Muted, "(none)")
	}
	label := func(s string) string { return C(t.Accent, fmt.Sprintf("%-9s", s)) }
	return []string{
		C(t.Title, it.Name),
		"",
		label("ID") + strconv.FormatInt(it.ID, 10),
		label("Category") + category,
		label("Quantity") + strconv.Itoa(it.Quantity),
		label("Price") + Money(it.Price),
		label("Total") + Money(it.TotalValue()),
	}
}

// CategoryLines renders per-category totals with value share bars.
func CategoryLines(s model.Summary) []string {
	t := Current()
	if len(s.Categories) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	nameW := len("(uncategorized)")
	for _, ct := range s.Categories {
		if w := lipgloss.Width(ct.Category); w > nameW {
			nameW = w
		}
	}
	out := make([]string, 0, len(s.Categories))
	for _, ct := range s.Categories {
		name := ct.Category
		if name == "" {
			name = "(uncategorized)"
		}
		out = append(out, fmt.Sprintf("%s  %s  %4d items %6d units %12s",
			name+strings.Repeat(" ", nameW-lipgloss.Width(name)),
			C(t.Muted, ShareBar(ct.Value, s.Value, 20)),
			ct.Items, ct.Units, Money(ct.Value)))
	}
	return out
}
