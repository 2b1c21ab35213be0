package domain

import (
	"encoding/json"
	"fmt"
)

// MaxBlock bounds the block size so every cell value fits in a uint8.
const MaxBlock = 15

// Board holds current values and which cells are fixed givens.
// The grid is Size()×Size() where Size() = Block², values are in
// [0, Size()] and 0 means empty.
type Board struct {
	Block  int       `json:"blockSize"`
	Values [][]uint8 `json:"values"`
	Fixed  [][]bool  `json:"fixed,omitempty"`
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewBoard returns an empty board for the given block size.
func NewBoard(block int) (*Board, error) {
	if block < 1 || block > MaxBlock {
		return nil, fmt.Errorf("block size %d out of range [1,%d]", block, MaxBlock)
	}
	size := block * block
	b := &Board{Block: block, Values: make([][]uint8, size)}
	for r := range b.Values {
		b.Values[r] = make([]uint8, size)
	}
	return b, nil
}

// BoardOf builds a board from existing values, rejecting malformed input:
// the value grid must be Size()×Size() and every entry in [0, Size()].
func BoardOf(block int, values [][]uint8) (*Board, error) {
	b, err := NewBoard(block)
	if err != nil {
		return nil, err
	}
	size := b.Size()
	if len(values) != size {
		return nil, fmt.Errorf("grid has %d rows, want %d", len(values), size)
	}
	for r, row := range values {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		for c, v := range row {
			if int(v) > size {
				return nil, fmt.Errorf("cell (%d,%d) holds %d, want [0,%d]", r, c, v, size)
			}
			b.Values[r][c] = v
		}
	}
	return b, nil
}

// Check verifies the structural contract on a board that arrived from
// outside (deserialized requests, storage).
func Check(b *Board) error {
	if b == nil {
		return fmt.Errorf("nil board")
	}
	if _, err := BoardOf(b.Block, b.Values); err != nil {
		return err
	}
	if b.Fixed != nil {
		size := b.Size()
		if len(b.Fixed) != size {
			return fmt.Errorf("fixed mask has %d rows, want %d", len(b.Fixed), size)
		}
		for r, row := range b.Fixed {
			if len(row) != size {
				return fmt.Errorf("fixed mask row %d has %d cells, want %d", r, len(row), size)
			}
		}
	}
	return nil
}

// Size returns the side length of the grid (Block squared).
func (b *Board) Size() int { return b.Block * b.Block }

// Clone returns a deep copy. Search branches each own their clone; a
// branch never mutates its caller's board.
func (b *Board) Clone() *Board {
	out := &Board{Block: b.Block, Values: make([][]uint8, len(b.Values))}
	for r := range b.Values {
		out.Values[r] = append([]uint8(nil), b.Values[r]...)
	}
	if b.Fixed != nil {
		out.Fixed = make([][]bool, len(b.Fixed))
		for r := range b.Fixed {
			out.Fixed[r] = append([]bool(nil), b.Fixed[r]...)
		}
	}
	return out
}

// Equal reports structural equality of block size and all cell values.
func (b *Board) Equal(o *Board) bool {
	if b.Block != o.Block {
		return false
	}
	for r := range b.Values {
		for c := range b.Values[r] {
			if b.Values[r][c] != o.Values[r][c] {
				return false
			}
		}
	}
	return true
}

// FirstEmpty returns the first blank cell in row-major order.
func (b *Board) FirstEmpty() (int, int, bool) {
	for r := range b.Values {
		for c := range b.Values[r] {
			if b.Values[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// BoxOrigin returns the top-left cell of the block containing (r, c).
func (b *Board) BoxOrigin(r, c int) (int, int) {
	return (r / b.Block) * b.Block, (c / b.Block) * b.Block
}

// boardJSON is the wire form. Cell rows are []int because
// encoding/json would render a []uint8 row as a base64 string.
type boardJSON struct {
	Block  int      `json:"blockSize"`
	Values [][]int  `json:"values"`
	Fixed  [][]bool `json:"fixed,omitempty"`
}

func (b Board) MarshalJSON() ([]byte, error) {
	w := boardJSON{Block: b.Block, Values: make([][]int, len(b.Values)), Fixed: b.Fixed}
	for r, row := range b.Values {
		w.Values[r] = make([]int, len(row))
		for c, v := range row {
			w.Values[r][c] = int(v)
		}
	}
	return json.Marshal(w)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var w boardJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Block = w.Block
	b.Fixed = w.Fixed
	b.Values = make([][]uint8, len(w.Values))
	for r, row := range w.Values {
		b.Values[r] = make([]uint8, len(row))
		for c, v := range row {
			if v < 0 || v > 255 {
				return fmt.Errorf("cell (%d,%d) holds %d, outside the cell range", r, c, v)
			}
			b.Values[r][c] = uint8(v)
		}
	}
	return nil
}

// MarkFixed records every currently non-zero cell as a given.
func (b *Board) MarkFixed() {
	size := b.Size()
	b.Fixed = make([][]bool, size)
	for r := 0; r < size; r++ {
		b.Fixed[r] = make([]bool, size)
		for c := 0; c < size; c++ {
			b.Fixed[r][c] = b.Values[r][c] != 0
		}
	}
}
