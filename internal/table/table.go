// Package table renders aligned text tables for terminal listings.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment specifies how content should be aligned within a column.
type Alignment int

const (
	// AlignLeft aligns content to the left.
	AlignLeft Alignment = iota
	// AlignRight aligns content to the right.
	AlignRight
)

// Column represents a table column with its configuration.
type Column struct {
	Header   string
	MaxWidth int // 0 means unlimited
	Align    Alignment
}

// Table holds columns and rows and tracks the display width of each column.
type Table struct {
	columns []Column
	rows    [][]string
	widths  []int
}

// New creates a new table with the specified columns.
func New(columns ...Column) *Table {
	t := &Table{
		columns: columns,
		widths:  make([]int, len(columns)),
	}
	for i, col := range columns {
		t.widths[i] = runewidth.StringWidth(col.Header)
	}
	return t
}

// AddRow adds a row of values. Missing values are blank; extra values are
// dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)

	for i, val := range row {
		if w := runewidth.StringWidth(val); w > t.widths[i] {
			t.widths[i] = w
		}
	}

	t.rows = append(t.rows, row)
}

// columnWidth returns the display width of column i after MaxWidth is applied.
func (t *Table) columnWidth(i int) int {
	w := t.widths[i]
	if m := t.columns[i].MaxWidth; m > 0 && w > m {
		return m
	}
	return w
}

// formatCell truncates value to width display cells and pads it according to
// align. Wide characters count as two cells.
func formatCell(value string, width int, align Alignment) string {
	value = runewidth.Truncate(value, width, "...")
	if align == AlignRight {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func (t *Table) renderLine(cells []string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = formatCell(cells[i], t.columnWidth(i), col.Align)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// Render returns the header, a separator and every row, one per line.
func (t *Table) Render() string {
	headers := make([]string, len(t.columns))
	rules := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
		rules[i] = strings.Repeat("-", t.columnWidth(i))
	}

	lines := []string{t.renderLine(headers), t.renderLine(rules)}
	for _, row := range t.rows {
		lines = append(lines, t.renderLine(row))
	}
	return strings.Join(lines, "\n")
}

// Print writes the rendered table to w, prefixing every line with indent.
func (t *Table) Print(w io.Writer, indent string) error {
	for _, line := range strings.Split(t.Render(), "\n") {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, line); err != nil {
			return err
		}
	}
	return nil
}
