package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
)

// DLX implements Algorithm X / Dancing Links over the Sudoku exact
// cover, parameterized by block size. For side length s = block² the
// matrix has 4s² constraint columns and s³ candidate rows (r,c,v):
// columns 0..s²-1 cell (r,c), then "row r has v", "col c has v",
// "box b has v" with b = (r/block)*block + c/block.
type DLX struct{}

func NewDLX() *DLX { return &DLX{} }

// node/column structures (classic dancing links)
type node struct {
	left, right, up, down *node
	col                   *column
	rowIdx                int // identifies the (r,c,v) candidate row
}
type column struct {
	node
	size   int
	name   int
	active bool // whether this constraint column is currently uncovered
}

type dlx struct {
	block, size int
	cells       int // size²
	cols        []*column
	rowHead     []*node
	sol         []*node
	solLen      int
	nodes       int
	activeCnt   int // number of active (uncovered) columns
}

func newDLX(block int) *dlx {
	size := block * block
	cells := size * size
	d := &dlx{
		block:   block,
		size:    size,
		cells:   cells,
		cols:    make([]*column, 4*cells),
		rowHead: make([]*node, cells*size),
		sol:     make([]*node, cells*size),
	}
	for i := range d.cols {
		c := &column{name: i, active: true}
		c.up = &c.node
		c.down = &c.node
		d.cols[i] = c
	}
	d.activeCnt = len(d.cols)

	// build rows for all (r,c,v)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			for v := 1; v <= size; v++ {
				row := d.rowIndex(r, c, v)
				cols := d.rowColumns(r, c, v)
				var first *node
				var prev *node
				for _, colID := range cols {
					col := d.cols[colID]
					n := &node{col: col, rowIdx: row}
					// vertical insert (at bottom)
					n.down = &col.node
					n.up = col.node.up
					col.node.up.down = n
					col.node.up = n
					col.size++
					// horizontal ring for the 4 nodes of the row
					if first == nil {
						first = n
						n.left = n
						n.right = n
					} else {
						n.left = prev
						n.right = prev.right
						prev.right.left = n
						prev.right = n
					}
					prev = n
				}
				d.rowHead[row] = first
			}
		}
	}
	return d
}

func (d *dlx) rowIndex(r, c, v int) int {
	return (r*d.size+c)*d.size + (v - 1)
}

func (d *dlx) rowColumns(r, c, v int) [4]int {
	cell := r*d.size + c
	rowN := d.cells + r*d.size + (v - 1)
	colN := 2*d.cells + c*d.size + (v - 1)
	box := (r/d.block)*d.block + (c / d.block)
	boxN := 3*d.cells + box*d.size + (v - 1)
	return [4]int{cell, rowN, colN, boxN}
}

func (d *dlx) decodeRow(row int) (r, c, v int) {
	cell := row / d.size
	v = (row % d.size) + 1
	r = cell / d.size
	c = cell % d.size
	return
}

// core operations
func (d *dlx) cover(col *column) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.node; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlx) uncover(col *column) {
	for i := col.up; i != &col.node; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// chooseColumn picks the active column with the smallest size.
func (d *dlx) chooseColumn() *column {
	var best *column
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

func (d *dlx) search(ctx context.Context, k int, wantCount int, found *int) bool {
	select {
	case <-ctx.Done():
		return true // stop search
	default:
	}
	// all constraints covered → solution
	if d.activeCnt == 0 {
		d.solLen = k
		(*found)++
		return *found >= wantCount
	}

	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.node; r = r.down {
		d.nodes++
		d.sol[k] = r
		for j := r.right; j != r; j = j.right {
			if j.col.active {
				d.cover(j.col)
			}
		}
		if d.search(ctx, k+1, wantCount, found) {
			// back out coverings done for this row before exiting
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		// backtrack: uncover in reverse order
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}

// applyGiven selects the row for a clue and covers its columns.
func (d *dlx) applyGiven(r, c, v int) error {
	head := d.rowHead[d.rowIndex(r, c, v)]
	if head == nil {
		return errors.New("invalid row mapping")
	}
	for j := head; ; j = j.right {
		d.cover(j.col)
		if j.right == head {
			break
		}
	}
	return nil
}

func (d *dlx) applyBoard(b *domain.Board) error {
	for r := 0; r < d.size; r++ {
		for c := 0; c < d.size; c++ {
			if v := int(b.Values[r][c]); v > 0 {
				if err := d.applyGiven(r, c, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *DLX) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	if err := checkInput(b); err != nil {
		return nil, ports.Stats{}, err
	}
	d := newDLX(b.Block)
	if err := d.applyBoard(b); err != nil {
		return nil, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, 1, &found)
	st := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return b, st, err
	}
	if found < 1 {
		return b, st, nil // unsolvable: input comes back unchanged
	}
	// reconstruct the board from the chosen rows; givens were covered
	// outside the search, so copy them from the input
	out := b.Clone()
	for i := 0; i < d.solLen; i++ {
		r, c, v := d.decodeRow(d.sol[i].rowIdx)
		out.Values[r][c] = uint8(v)
	}
	return out, st, nil
}

func (s *DLX) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	if err := checkInput(b); err != nil {
		return false, ports.Stats{}, err
	}
	d := newDLX(b.Block)
	if err := d.applyBoard(b); err != nil {
		return false, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, 2, &found) // stop after finding 2 solutions
	st := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return found == 1, st, nil
}
