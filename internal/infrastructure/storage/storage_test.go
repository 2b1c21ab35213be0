package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"svw.info/nsudoku/internal/domain"
	"svw.info/nsudoku/internal/ports"
)

func testPuzzle(t *testing.T, id string, d domain.Difficulty) *domain.Puzzle {
	t.Helper()
	b, err := domain.NewBoard(3)
	if err != nil {
		t.Fatal(err)
	}
	b.Values[0][0] = 5
	b.Values[4][4] = 9
	b.MarkFixed()
	return &domain.Puzzle{
		ID:         id,
		Seed:       42,
		Difficulty: d,
		Board:      *b,
		CreatedAt:  1700000000,
		Name:       "test puzzle",
	}
}

// Both stores must satisfy the same contract.
func runStorageTests(t *testing.T, st ports.Storage) {
	ctx := context.Background()

	p := testPuzzle(t, "p-one", domain.Hard)
	if err := st.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := st.Load(ctx, "p-one")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name || got.Difficulty != p.Difficulty {
		t.Fatalf("roundtrip metadata mismatch: %+v", got)
	}
	if !got.Board.Equal(&p.Board) {
		t.Fatalf("roundtrip board mismatch")
	}
	if !got.Board.Fixed[0][0] || got.Board.Fixed[1][1] {
		t.Fatalf("fixed mask not preserved")
	}

	// overwrite with same ID
	p.Name = "renamed"
	if err := st.Save(ctx, p); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	if err := st.Save(ctx, testPuzzle(t, "p-two", domain.Easy)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	metas, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ids := map[string]domain.PuzzleMeta{}
	for _, m := range metas {
		ids[m.ID] = m
	}
	if len(ids) != 2 {
		t.Fatalf("List returned %d distinct puzzles, want 2: %v", len(ids), metas)
	}
	if ids["p-one"].Name != "renamed" || ids["p-one"].Difficulty != domain.Hard {
		t.Fatalf("listing entry stale: %+v", ids["p-one"])
	}

	if _, err := st.Load(ctx, "missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) = %v, want os.ErrNotExist", err)
	}

	if err := st.Save(ctx, &domain.Puzzle{}); err == nil {
		t.Fatalf("Save accepted a puzzle without an ID")
	}
}

func TestFSStore(t *testing.T) {
	runStorageTests(t, NewFS(t.TempDir()))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "puzzles.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()
	runStorageTests(t, s)
}
