// Package compressor packs a sparse two-dimensional table of ints into a row-displacement table.
//
// Rows are overlaid on a single slice. Each row is shifted by its own displacement so that its
// non-empty cells land on unused slots; Bounds records which row owns each slot.
package compressor

import (
	"fmt"
	"sort"
)

// noOwner marks a slot of Bounds that no row occupies.
const noOwner = -1

type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

// Compress packs entries, a row-major table with colCount columns. Cells equal to emptyValue are
// not stored.
func Compress(entries []int, colCount int, emptyValue int) (*RowDisplacementTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table needs at least one entry")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a column count must be >= 1; got: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("%v entries cannot be split into rows of %v columns", len(entries), colCount)
	}
	rowCount := len(entries) / colCount

	rows := make([]sparseRow, rowCount)
	for row := range rows {
		rows[row].num = row
		for col := 0; col < colCount; col++ {
			if entries[row*colCount+col] != emptyValue {
				rows[row].cols = append(rows[row].cols, col)
			}
		}
	}
	// Densest rows are placed first.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	tab := &RowDisplacementTable{
		OriginalRowCount: rowCount,
		OriginalColCount: colCount,
		EmptyValue:       emptyValue,
		RowDisplacement:  make([]int, rowCount),
	}
	tab.grow(colCount)
	for _, r := range rows {
		if len(r.cols) == 0 {
			continue
		}
		d := tab.firstFit(r)
		tab.grow(d + colCount)
		for _, col := range r.cols {
			tab.Entries[d+col] = entries[r.num*colCount+col]
			tab.Bounds[d+col] = r.num
		}
		tab.RowDisplacement[r.num] = d
	}

	return tab, nil
}

type sparseRow struct {
	num  int
	cols []int
}

// firstFit returns the smallest displacement at which every non-empty cell of r lands on a free slot.
func (tab *RowDisplacementTable) firstFit(r sparseRow) int {
	for d := 0; ; d++ {
		fits := true
		for _, col := range r.cols {
			if d+col < len(tab.Bounds) && tab.Bounds[d+col] != noOwner {
				fits = false
				break
			}
		}
		if fits {
			return d
		}
	}
}

func (tab *RowDisplacementTable) grow(size int) {
	for len(tab.Entries) < size {
		tab.Entries = append(tab.Entries, tab.EmptyValue)
		tab.Bounds = append(tab.Bounds, noOwner)
	}
}

// Lookup returns the entry at (row, col). A cell that was empty in the original table yields
// EmptyValue.
func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	i := tab.RowDisplacement[row] + col
	if i >= len(tab.Bounds) || tab.Bounds[i] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[i], nil
}

// OriginalTableSize returns the row and column counts of the table before compression.
func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}
