package solver

import (
	"context"
	"time"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
	"svw.info/nsudoku/internal/propagate"
	"svw.info/nsudoku/internal/validator"
)

// Hybrid combines backtracking with constraint propagation: after each
// tentative placement the branch clone is driven to its deduction
// fixpoint before recursing, which shrinks the search tree wherever
// forced moves exist. A propagation contradiction folds into the
// normal backtrack path.
type Hybrid struct {
	Observer ports.Observer
}

func NewHybrid() *Hybrid { return &Hybrid{} }

func (s *Hybrid) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	if err := checkInput(b); err != nil {
		return nil, ports.Stats{}, err
	}
	nodes := 0
	out := s.search(ctx, b, &nodes)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return out, st, err
	}
	return out, st, nil
}

func (s *Hybrid) search(ctx context.Context, b *domain.Board, nodes *int) *domain.Board {
	if ctx.Err() != nil {
		return b
	}
	if validator.Solved(b) {
		return b
	}
	r, c, blank := b.FirstEmpty()
	if !blank || Exhausted(b) {
		return b
	}
	size := b.Size()
	for v := 1; v <= size; v++ {
		clone := b.Clone()
		clone.Values[r][c] = uint8(v)
		if !validator.GridValid(clone) {
			continue
		}
		*nodes++
		ports.NotifyPlace(s.Observer, r, c, uint8(v))
		next, ok := propagate.ToFixpoint(clone, s.Observer)
		if ok {
			res := s.search(ctx, next, nodes)
			if validator.Solved(res) {
				return res
			}
		}
		// Branch abandoned: revert every cell it filled beyond b.
		for rr := range next.Values {
			for cc := range next.Values[rr] {
				if b.Values[rr][cc] == 0 && next.Values[rr][cc] != 0 {
					ports.NotifyClear(s.Observer, rr, cc)
				}
			}
		}
	}
	return b
}
