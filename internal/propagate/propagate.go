// Package propagate applies single-candidate deduction rules until no
// forced move remains.
package propagate

import (
	"svw.info/nsudoku/internal/candidate"
	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
	"svw.info/nsudoku/internal/validator"
)

// pass accumulates placements of a single deduction pass and detects
// when two rules target the same cell with different values.
type pass struct {
	out    *domain.Board
	obs    ports.Observer
	placed map[domain.CellCoord]uint8
}

// put records a forced placement. It reports false when the cell was
// already forced to a different value this pass, which means the rules
// disagree and the branch holds a contradiction.
func (p *pass) put(r, c int, v uint8) bool {
	cell := domain.CellCoord{Row: r, Col: c}
	if prev, ok := p.placed[cell]; ok {
		return prev == v
	}
	p.placed[cell] = v
	p.out.Values[r][c] = v
	ports.NotifyPlace(p.obs, r, c, v)
	return true
}

// abort clears every placement made this pass, keeping observer
// place/clear notifications balanced on the failing path.
func (p *pass) abort() {
	for cell := range p.placed {
		ports.NotifyClear(p.obs, cell.Row, cell.Col)
	}
}

// Once runs a single deduction pass: naked singles, then row hidden
// singles, then column hidden singles, all read from one candidate
// tensor computed from the incoming board. Candidates are deliberately
// not recomputed between rules; the rare case where two rules force
// different values into one cell is reported as a contradiction
// (ok=false) instead of silently overwriting, so the caller can
// backtrack.
func Once(b *domain.Board, obs ports.Observer) (*domain.Board, bool) {
	size := b.Size()
	tensor := candidate.TensorOf(b)
	p := &pass{out: b.Clone(), obs: obs, placed: make(map[domain.CellCoord]uint8)}

	// Naked singles: cells with exactly one candidate.
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if v, ok := tensor[domain.CellCoord{Row: r, Col: c}].Sole(); ok {
				if !p.put(r, c, v) {
					p.abort()
					return nil, false
				}
			}
		}
	}

	// Row hidden singles: a value with exactly one admitting row in a column.
	for c := 0; c < size; c++ {
		for v := uint8(1); int(v) <= size; v++ {
			hit, n := -1, 0
			for r := 0; r < size; r++ {
				if tensor[domain.CellCoord{Row: r, Col: c}].Has(v) {
					hit = r
					n++
				}
			}
			if n == 1 {
				if !p.put(hit, c, v) {
					p.abort()
					return nil, false
				}
			}
		}
	}

	// Column hidden singles: a value with exactly one admitting column in a row.
	for r := 0; r < size; r++ {
		for v := uint8(1); int(v) <= size; v++ {
			hit, n := -1, 0
			for c := 0; c < size; c++ {
				if tensor[domain.CellCoord{Row: r, Col: c}].Has(v) {
					hit = c
					n++
				}
			}
			if n == 1 {
				if !p.put(r, hit, v) {
					p.abort()
					return nil, false
				}
			}
		}
	}

	return p.out, true
}

// ToFixpoint repeats Once until the board stops changing between
// passes and returns the stable board. ok=false reports a
// contradiction found along the way; the returned board is then the
// last consistent one. Terminates because every pass either fills at
// least one cell or changes nothing.
func ToFixpoint(b *domain.Board, obs ports.Observer) (*domain.Board, bool) {
	cur := b
	for {
		next, ok := Once(cur, obs)
		if !ok {
			return cur, false
		}
		// A pass can stack placements into an invalid grid; surface it
		// as a contradiction rather than handing it onward.
		if !validator.GridValid(next) {
			for r := range next.Values {
				for c := range next.Values[r] {
					if cur.Values[r][c] == 0 && next.Values[r][c] != 0 {
						ports.NotifyClear(obs, r, c)
					}
				}
			}
			return cur, false
		}
		if next.Equal(cur) {
			return next, true
		}
		cur = next
	}
}
