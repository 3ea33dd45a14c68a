package compressor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	x := 0 // an empty value

	tests := []struct {
		caption  string
		original []int
		colCount int
		size     int
	}{
		{
			caption: "a full table",
			original: []int{
				1, 2, 3, 4, 5,
				6, 7, 8, 9, 10,
				11, 12, 13, 14, 15,
			},
			colCount: 5,
			size:     15,
		},
		{
			caption: "an empty table",
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
			},
			colCount: 5,
			size:     5,
		},
		{
			caption: "an empty row between full rows",
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				2, 2, 2, 2, 2,
			},
			colCount: 5,
			size:     10,
		},
		{
			caption: "rows without overlapping cells share slots",
			original: []int{
				1, x, x, x,
				x, 2, x, x,
				x, x, 3, x,
			},
			colCount: 4,
			size:     4,
		},
		{
			caption: "a sparse LL(1) table",
			original: []int{
				1, x, x, 2, x, x,
				x, 3, 4, x, x, 5,
				x, x, x, x, 6, x,
				7, 7, x, x, x, x,
			},
			colCount: 6,
		},
		{
			caption:  "a single column",
			original: []int{1, x, 2},
			colCount: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tab, err := Compress(tt.original, tt.colCount, x)
			require.NoError(t, err)

			rowCount, colCount := tab.OriginalTableSize()
			assert.Equal(t, len(tt.original)/tt.colCount, rowCount)
			assert.Equal(t, tt.colCount, colCount)
			if tt.size > 0 {
				assert.Len(t, tab.Entries, tt.size)
			}
			assert.LessOrEqual(t, len(tab.Entries), len(tt.original)+tt.colCount)

			for row := 0; row < rowCount; row++ {
				for col := 0; col < colCount; col++ {
					v, err := tab.Lookup(row, col)
					require.NoError(t, err)
					assert.Equal(t, tt.original[row*colCount+col], v, "[%v, %v]", row, col)
				}
			}
		})
	}
}

func TestCompress_InvalidTable(t *testing.T) {
	tests := []struct {
		caption  string
		original []int
		colCount int
	}{
		{
			caption:  "no entries",
			original: nil,
			colCount: 1,
		},
		{
			caption:  "no columns",
			original: []int{1},
			colCount: 0,
		},
		{
			caption:  "a ragged table",
			original: []int{1, 2, 3},
			colCount: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Compress(tt.original, tt.colCount, 0)
			assert.Error(t, err)
		})
	}
}

func TestRowDisplacementTable_Lookup_OutOfRange(t *testing.T) {
	tab, err := Compress([]int{1, 0, 0, 2}, 2, 0)
	require.NoError(t, err)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		v, err := tab.Lookup(idx[0], idx[1])
		assert.Error(t, err)
		assert.Equal(t, 0, v)
	}
}
