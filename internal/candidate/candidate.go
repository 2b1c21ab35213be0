// Package candidate computes legal values for empty cells by tentative
// placement: a value is a candidate iff placing it on a throwaway copy
// leaves the whole grid valid. Deliberately a full validity recheck per
// value rather than a row/col/block bitmask; candidates are derived data
// and must be recomputed after any mutation of the board they came from.
package candidate

import (
	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/validator"
)

// Set holds candidate values in increasing order.
type Set []uint8

// Sole returns the single candidate, if there is exactly one.
func (s Set) Sole() (uint8, bool) {
	if len(s) == 1 {
		return s[0], true
	}
	return 0, false
}

// Has reports whether v is in the set.
func (s Set) Has(v uint8) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// At returns the candidate set for an empty cell. Filled cells have no
// candidates.
func At(b *domain.Board, r, c int) Set {
	if b.Values[r][c] != 0 {
		return nil
	}
	size := b.Size()
	scratch := b.Clone()
	var out Set
	for v := 1; v <= size; v++ {
		scratch.Values[r][c] = uint8(v)
		if validator.GridValid(scratch) {
			out = append(out, uint8(v))
		}
	}
	return out
}

// Tensor maps every empty cell to its candidate set. Filled cells have
// no entry; callers must treat them as never forced.
type Tensor map[domain.CellCoord]Set

// TensorOf computes candidate sets for every empty cell in one pass.
func TensorOf(b *domain.Board) Tensor {
	out := make(Tensor)
	for r := range b.Values {
		for c := range b.Values[r] {
			if b.Values[r][c] != 0 {
				continue
			}
			out[domain.CellCoord{Row: r, Col: c}] = At(b, r, c)
		}
	}
	return out
}
