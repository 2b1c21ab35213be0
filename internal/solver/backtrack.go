package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
	"svw.info/nsudoku/internal/validator"
)

// ErrInconsistent reports a clue set that already violates the
// row/col/block constraints; no branch can repair it.
var ErrInconsistent = errors.New("inconsistent givens")

// Backtracking is the plain depth-first solver: scan to the first blank
// cell, try each value in increasing order on a fresh clone, recurse,
// and discard the clone on failure. The caller's board is never
// mutated; an unsolvable puzzle comes back unchanged.
type Backtracking struct {
	Observer ports.Observer
}

func NewBacktracking() *Backtracking { return &Backtracking{} }

func (s *Backtracking) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
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

func (s *Backtracking) search(ctx context.Context, b *domain.Board, nodes *int) *domain.Board {
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
		res := s.search(ctx, clone, nodes)
		if validator.Solved(res) {
			return res
		}
		ports.NotifyClear(s.Observer, r, c)
	}
	return b
}

// Exhausted reports whether the first blank cell admits no value at
// all, meaning the current branch must be abandoned.
func Exhausted(b *domain.Board) bool {
	r, c, blank := b.FirstEmpty()
	if !blank {
		return false
	}
	scratch := b.Clone()
	size := b.Size()
	for v := 1; v <= size; v++ {
		scratch.Values[r][c] = uint8(v)
		if validator.GridValid(scratch) {
			return false
		}
	}
	return true
}

// checkInput guards the boundary contract: well-formed dimensions and
// values, and a consistent clue set.
func checkInput(b *domain.Board) error {
	if err := domain.Check(b); err != nil {
		return err
	}
	if !validator.GridValid(b) {
		return ErrInconsistent
	}
	return nil
}
