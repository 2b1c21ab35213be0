package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
)

// UniqueGenerator creates puzzles with a unique solution using a
// provided Solver for the uniqueness probe.
type UniqueGenerator struct {
	Solver ports.Solver
}

func NewUniqueGenerator(s ports.Solver) *UniqueGenerator {
	return &UniqueGenerator{Solver: s}
}

// targetGivens scales the classic 9x9 clue counts (40/34/28/24) to the
// board's cell count.
func targetGivens(d domain.Difficulty, cells int) int {
	switch d {
	case domain.Easy:
		return cells * 50 / 100
	case domain.Medium:
		return cells * 42 / 100
	case domain.Hard:
		return cells * 35 / 100
	default:
		return cells * 30 / 100 // Expert
	}
}

// Generate creates a puzzle with a unique solution from seed at the
// target difficulty: fill a random complete solution, then carve out
// clues as long as the uniqueness probe still passes.
func (g *UniqueGenerator) Generate(ctx context.Context, block int, seed int64, diff domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	full, err := domain.NewBoard(block)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	if !fillRandom(ctx, rng, full) {
		return nil, ports.Stats{}, context.Canceled
	}

	puz := full.Clone()
	size := puz.Size()
	cells := size * size
	positions := rng.Perm(cells)

	target := targetGivens(diff, cells)
	deadline := start.Add(900 * time.Millisecond)
	nodes := 0
	givens := cells

	for _, pos := range positions {
		if time.Now().After(deadline) {
			break
		}
		if givens <= target {
			break
		}
		r, c := pos/size, pos%size
		old := puz.Values[r][c]
		puz.Values[r][c] = 0
		unique, st, err := g.Solver.Unique(ctx, puz)
		if err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		nodes += st.Nodes
		if unique {
			givens--
		} else {
			puz.Values[r][c] = old
		}
	}

	puz.MarkFixed()
	p := &domain.Puzzle{
		Seed:       seed,
		Difficulty: diff,
		Board:      *puz,
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// fillRandom completes an empty board into a full valid solution by
// trying values in random order per cell.
func fillRandom(ctx context.Context, rng *rand.Rand, b *domain.Board) bool {
	size := b.Size()
	nums := make([]uint8, size)
	for i := range nums {
		nums[i] = uint8(i + 1)
	}
	var dfs func(r, c int) bool
	dfs = func(r, c int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == size {
			return true
		}
		nr, nc := r, c+1
		if nc == size {
			nr, nc = r+1, 0
		}
		rng.Shuffle(size, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
		for _, v := range nums {
			if allowed(b, r, c, v) {
				b.Values[r][c] = v
				if dfs(nr, nc) {
					return true
				}
				b.Values[r][c] = 0
			}
		}
		return false
	}
	return dfs(0, 0)
}

// allowed mirrors the row/col/block checks locally for the generator.
func allowed(b *domain.Board, r, c int, v uint8) bool {
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
