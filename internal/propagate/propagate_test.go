package propagate

import (
	"testing"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/validator"
)

var solved9 = [][]uint8{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// recorder tracks net placements seen through the observer hook.
type recorder struct {
	placed  int
	cleared int
}

func (r *recorder) OnPlace(row, col int, v uint8) { r.placed++ }
func (r *recorder) OnClear(row, col int)          { r.cleared++ }

// withBlanks clones the solved grid and blanks the given cells.
func withBlanks(t *testing.T, cells []domain.CellCoord) *domain.Board {
	t.Helper()
	b, err := domain.BoardOf(3, solved9)
	if err != nil {
		t.Fatal(err)
	}
	for _, cell := range cells {
		b.Values[cell.Row][cell.Col] = 0
	}
	return b
}

func TestOnceFillsNakedSingles(t *testing.T) {
	blanks := []domain.CellCoord{{Row: 0, Col: 0}, {Row: 4, Col: 4}, {Row: 8, Col: 7}}
	b := withBlanks(t, blanks)
	rec := &recorder{}
	out, ok := Once(b, rec)
	if !ok {
		t.Fatalf("Once reported a contradiction on a consistent board")
	}
	want, _ := domain.BoardOf(3, solved9)
	if !out.Equal(want) {
		t.Fatalf("Once did not restore the blanked cells")
	}
	if b.Values[0][0] != 0 {
		t.Fatalf("Once mutated its input board")
	}
	if rec.placed != len(blanks) || rec.cleared != 0 {
		t.Fatalf("observer saw %d places / %d clears, want %d / 0", rec.placed, rec.cleared, len(blanks))
	}
}

func TestOnceRowHiddenSingle(t *testing.T) {
	// Place 5 so every row but row 0 excludes it, leaving (0,0) as the
	// only position for 5 in column 0. (0,0) itself has many candidates,
	// so only the hidden-single rule can find it.
	b, _ := domain.NewBoard(3)
	fives := []domain.CellCoord{
		{Row: 1, Col: 3}, {Row: 2, Col: 6}, {Row: 3, Col: 1}, {Row: 4, Col: 4},
		{Row: 5, Col: 7}, {Row: 6, Col: 2}, {Row: 7, Col: 5}, {Row: 8, Col: 8},
	}
	for _, cell := range fives {
		b.Values[cell.Row][cell.Col] = 5
	}
	out, ok := Once(b, nil)
	if !ok {
		t.Fatalf("Once reported a contradiction")
	}
	if out.Values[0][0] != 5 {
		t.Fatalf("hidden single not placed: out[0][0] = %d, want 5", out.Values[0][0])
	}
	filled := 0
	for r := range out.Values {
		for c := range out.Values[r] {
			if out.Values[r][c] != 0 {
				filled++
			}
		}
	}
	if filled != len(fives)+1 {
		t.Fatalf("pass filled %d cells, want %d", filled, len(fives)+1)
	}
}

func TestToFixpointIdempotent(t *testing.T) {
	blanks := []domain.CellCoord{
		{Row: 0, Col: 2}, {Row: 1, Col: 5}, {Row: 2, Col: 8}, {Row: 3, Col: 1},
		{Row: 4, Col: 4}, {Row: 5, Col: 7}, {Row: 6, Col: 0}, {Row: 7, Col: 3},
	}
	b := withBlanks(t, blanks)
	fix, ok := ToFixpoint(b, nil)
	if !ok {
		t.Fatalf("ToFixpoint reported a contradiction")
	}
	again, ok := ToFixpoint(fix, nil)
	if !ok || !again.Equal(fix) {
		t.Fatalf("ToFixpoint is not idempotent")
	}
	if !validator.Solved(fix) {
		t.Fatalf("propagation alone should solve this puzzle")
	}
}

func TestToFixpointNoForcedMoves(t *testing.T) {
	b, _ := domain.NewBoard(3)
	fix, ok := ToFixpoint(b, nil)
	if !ok {
		t.Fatalf("ToFixpoint reported a contradiction on the empty grid")
	}
	if !fix.Equal(b) {
		t.Fatalf("empty grid has no forced moves, but the board changed")
	}
}

func TestToFixpointDetectsConflictingPlacements(t *testing.T) {
	// Stale-snapshot trap: several cells are naked singles for the same
	// value in one unit, so a single pass stacks duplicates. The pass
	// must surface a contradiction, not persist the inconsistent board.
	b, _ := domain.BoardOf(2, [][]uint8{
		{0, 0, 0, 0},
		{1, 0, 3, 4},
		{3, 0, 0, 1},
		{4, 0, 0, 0},
	})
	if !validator.GridValid(b) {
		t.Fatalf("test board must start consistent")
	}
	rec := &recorder{}
	out, ok := ToFixpoint(b, rec)
	if ok {
		t.Fatalf("ToFixpoint missed the conflicting placements")
	}
	if !out.Equal(b) {
		t.Fatalf("on contradiction the last consistent board must be returned")
	}
	if rec.placed != rec.cleared {
		t.Fatalf("observer saw %d places but %d clears on a failed pass", rec.placed, rec.cleared)
	}
}
