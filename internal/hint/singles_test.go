package hint

import (
	"context"
	"testing"

	"svw.info/nsudoku/internal/domain"
)

func TestHintFindsNakedSingle(t *testing.T) {
	b, _ := domain.BoardOf(2, [][]uint8{
		{1, 2, 3, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	h, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategySingles)
	if err != nil || !ok {
		t.Fatalf("Hint = (%v, %v, %v)", h, ok, err)
	}
	if h.Value != 4 || len(h.Cells) != 1 || h.Cells[0] != (domain.CellCoord{Row: 0, Col: 3}) {
		t.Fatalf("unexpected hint: %+v", h)
	}
	if h.Strategy != domain.StrategySingles {
		t.Fatalf("wrong strategy tier: %v", h.Strategy)
	}
}

func TestHintFindsHiddenSingle(t *testing.T) {
	// 5 is excluded from every row but row 0, so column 0 has exactly
	// one spot for it, while (0,0) itself has many candidates.
	b, _ := domain.NewBoard(3)
	for _, cell := range []domain.CellCoord{
		{Row: 1, Col: 3}, {Row: 2, Col: 6}, {Row: 3, Col: 1}, {Row: 4, Col: 4},
		{Row: 5, Col: 7}, {Row: 6, Col: 2}, {Row: 7, Col: 5}, {Row: 8, Col: 8},
	} {
		b.Values[cell.Row][cell.Col] = 5
	}
	h, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategySingles)
	if err != nil || !ok {
		t.Fatalf("Hint = (%v, %v, %v)", h, ok, err)
	}
	if h.Value != 5 || h.Cells[0] != (domain.CellCoord{Row: 0, Col: 0}) {
		t.Fatalf("unexpected hint: %+v", h)
	}
}

func TestHintNoneOnEmptyBoard(t *testing.T) {
	b, _ := domain.NewBoard(3)
	_, ok, err := NewSingles().Hint(context.Background(), b, domain.StrategyXWing)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if ok {
		t.Fatalf("empty board has no forced move, but a hint was returned")
	}
}

func TestHintRejectsMalformed(t *testing.T) {
	bad := &domain.Board{Block: 2, Values: [][]uint8{{9, 0, 0, 0}}}
	if _, _, err := NewSingles().Hint(context.Background(), bad, domain.StrategySingles); err == nil {
		t.Fatalf("Hint accepted a malformed board")
	}
}
