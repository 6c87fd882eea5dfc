// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "sort"

// TableLayout is the result of fitting a table to a width. Cells are
// the table's cells in row-major order, re-wrapped to their column
// width and flattened back into one word list each.
type TableLayout struct {
	ColumnWidths []int
	RowHeights   []int
	Cells        [][]Word
	// Malformed is set when the cells do not form a whole number of
	// rows, or there are no columns. Such tables render as one line.
	Malformed bool
}

// Height is the number of terminal rows the table occupies.
func (layout TableLayout) Height() int {
	if layout.Malformed {
		return 1
	}
	height := 0
	for _, rowHeight := range layout.RowHeights {
		height += rowHeight
	}
	return height
}

// CellWidth returns the display width of a cell's words laid end to
// end.
func CellWidth(words []Word) int {
	width := 0
	for index := range words {
		width += DisplayWidth(words[index].content)
	}
	return width
}

// LayoutTable fits a table into width cells, reserving one styling
// cell per column.
//
// Columns keep their natural width when the whole table fits. Otherwise
// columns wider than an even share of the budget are overflowing: the
// rest keep their natural width and the overflowing ones split what
// remains in proportion to their natural width. No overflowing column
// gets less than max(1, budget/(2*overflowing)); columns are sized from
// narrowest to widest, and one clamped to that floor leaves the pools
// so the wider columns are sized against what is actually left.
func LayoutTable(cells [][]Word, columns, width int) TableLayout {
	if columns <= 0 || len(cells)%columns != 0 {
		return TableLayout{Cells: cells, Malformed: true}
	}

	rows := len(cells) / columns
	natural := make([]int, columns)
	for index, cell := range cells {
		column := index % columns
		natural[column] = max(natural[column], CellWidth(cell))
	}

	total := 0
	for _, columnWidth := range natural {
		total += columnWidth
	}

	heights := make([]int, rows)
	for row := range heights {
		heights[row] = 1
	}
	if total+columns <= width {
		return TableLayout{ColumnWidths: natural, RowHeights: heights, Cells: cells}
	}

	widths := balanceColumns(natural, max(width-columns, 0))

	wrapped := make([][]Word, len(cells))
	for index, cell := range cells {
		column := index % columns
		lines := WrapWords(cell, widths[column], true)
		row := index / columns
		heights[row] = max(heights[row], len(lines))

		var flat []Word
		for _, line := range lines {
			flat = append(flat, line...)
		}
		wrapped[index] = flat
	}
	return TableLayout{ColumnWidths: widths, RowHeights: heights, Cells: wrapped}
}

// balanceColumns shrinks natural column widths into budget cells.
func balanceColumns(natural []int, budget int) []int {
	threshold := budget / len(natural)

	var overflowing []int
	pool := 0
	fixed := 0
	for column, columnWidth := range natural {
		if columnWidth > threshold {
			overflowing = append(overflowing, column)
			pool += columnWidth
		} else {
			fixed += columnWidth
		}
	}

	widths := make([]int, len(natural))
	copy(widths, natural)
	if len(overflowing) == 0 {
		return widths
	}

	available := max(budget-fixed, 0)
	floor := max(1, available/(2*len(overflowing)))

	sort.SliceStable(overflowing, func(i, j int) bool {
		return natural[overflowing[i]] < natural[overflowing[j]]
	})
	for _, column := range overflowing {
		share := 0
		if pool > 0 {
			share = natural[column] * available / pool
		}
		if share < floor {
			share = floor
			pool -= natural[column]
			available = max(available-floor, 0)
		}
		widths[column] = share
	}

	// Floor clamps can leave the sized columns over budget by a few
	// cells; take them back from the widest columns.
	excess := -max(budget-fixed, 0)
	for _, column := range overflowing {
		excess += widths[column]
	}
	for excess > 0 {
		widest := -1
		for _, column := range overflowing {
			if widths[column] > 1 && (widest < 0 || widths[column] > widths[widest]) {
				widest = column
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
		excess--
	}
	return widths
}

func (block *Block) transformTable(width int) {
	columns := 0
	for index := range block.meta {
		if block.meta[index].wordType == Meta(MetaColumnCount) {
			columns++
		}
	}

	cells := make([][]Word, len(block.content))
	for index, cell := range block.content {
		cells[index] = unwrap([][]Word{cell})
	}

	layout := LayoutTable(cells, columns, width)
	block.content = layout.Cells
	block.columnWidths = layout.ColumnWidths
	block.rowHeights = layout.RowHeights
	block.malformed = layout.Malformed
	block.height = layout.Height()
}

// CellLines returns the lines of table cell index as the last transform
// laid them out, or nil for other kinds, malformed tables and indexes
// out of range.
func (block *Block) CellLines(index int) [][]Word {
	columns := len(block.columnWidths)
	if block.kind != NodeTable || columns == 0 || index < 0 || index >= len(block.content) {
		return nil
	}
	return WrapWords(unwrap([][]Word{block.content[index]}), block.columnWidths[index%columns], true)
}
