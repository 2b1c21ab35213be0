package solver

import (
	"context"
	"time"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
)

// Unique counts solutions up to 2 and reports whether exactly one exists.
func (s *Backtracking) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	return uniqueByCount(ctx, b)
}

func (s *Hybrid) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	return uniqueByCount(ctx, b)
}

// uniqueByCount runs an in-place counting search on a private clone.
// Unlike Solve it checks each placement against row/col/block peers
// directly; the clone never goes through an invalid state, so a full
// grid revalidation per node would buy nothing here.
func uniqueByCount(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	if err := checkInput(b); err != nil {
		return false, ports.Stats{}, err
	}
	grid := b.Clone()
	size := grid.Size()
	nodes := 0
	count := 0

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil || count >= 2 {
			return true // stop early
		}
		r, c, blank := grid.FirstEmpty()
		if !blank {
			count++
			return count >= 2
		}
		for v := 1; v <= size; v++ {
			nodes++
			if fits(grid, r, c, uint8(v)) {
				grid.Values[r][c] = uint8(v)
				if dfs() {
					return true
				}
				grid.Values[r][c] = 0
			}
		}
		return false
	}
	_ = dfs()
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}

// fits reports whether v can occupy (r, c) given its row, column, and
// block peers.
func fits(b *domain.Board, r, c int, v uint8) bool {
	size := b.Size()
	for i := 0; i < size; i++ {
		if b.Values[r][i] == v || b.Values[i][c] == v {
			return false
		}
	}
	br, bc := b.BoxOrigin(r, c)
	for dr := 0; dr < b.Block; dr++ {
		for dc := 0; dc < b.Block; dc++ {
			if b.Values[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}
