package validator

import (
	"context"

	"svw.info/nsudoku/internal/domain"
)

// LineValid reports whether no non-zero value repeats in the line.
func LineValid(line []uint8) bool {
	seen := make([]bool, len(line)+1)
	for _, v := range line {
		if v == 0 {
			continue
		}
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// GridValid reports whether every row, column, and block satisfies
// LineValid. Pure; the board is not modified.
func GridValid(b *domain.Board) bool {
	size := b.Size()
	line := make([]uint8, size)
	for r := 0; r < size; r++ {
		if !LineValid(b.Values[r]) {
			return false
		}
	}
	for c := 0; c < size; c++ {
		for r := 0; r < size; r++ {
			line[r] = b.Values[r][c]
		}
		if !LineValid(line) {
			return false
		}
	}
	for br := 0; br < b.Block; br++ {
		for bc := 0; bc < b.Block; bc++ {
			i := 0
			for dr := 0; dr < b.Block; dr++ {
				for dc := 0; dc < b.Block; dc++ {
					line[i] = b.Values[br*b.Block+dr][bc*b.Block+dc]
					i++
				}
			}
			if !LineValid(line) {
				return false
			}
		}
	}
	return true
}

// Solved reports whether the board has no blanks and GridValid holds.
func Solved(b *domain.Board) bool {
	if _, _, blank := b.FirstEmpty(); blank {
		return false
	}
	return GridValid(b)
}

// FastValidator reports constraint violations with cell coordinates,
// for the validation API.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	if err := domain.Check(b); err != nil {
		return false, nil, err
	}
	size := b.Size()
	conf := make([]domain.CellCoord, 0, 8)
	seen := make([]bool, size+1)
	reset := func() {
		for i := range seen {
			seen[i] = false
		}
	}
	// rows
	for r := 0; r < size; r++ {
		reset()
		for c := 0; c < size; c++ {
			val := b.Values[r][c]
			if val == 0 {
				continue
			}
			if seen[val] {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			seen[val] = true
		}
	}
	// cols
	for c := 0; c < size; c++ {
		reset()
		for r := 0; r < size; r++ {
			val := b.Values[r][c]
			if val == 0 {
				continue
			}
			if seen[val] {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			seen[val] = true
		}
	}
	// blocks
	for br := 0; br < b.Block; br++ {
		for bc := 0; bc < b.Block; bc++ {
			reset()
			for dr := 0; dr < b.Block; dr++ {
				for dc := 0; dc < b.Block; dc++ {
					r := br*b.Block + dr
					c := bc*b.Block + dc
					val := b.Values[r][c]
					if val == 0 {
						continue
					}
					if seen[val] {
						conf = append(conf, domain.CellCoord{Row: r, Col: c})
					}
					seen[val] = true
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}
