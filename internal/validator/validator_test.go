package validator

import (
	"context"
	"testing"

	"svw.info/nsudoku/internal/domain"
)

// A complete, valid 9x9 solution.
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

func board9(t *testing.T, values [][]uint8) *domain.Board {
	t.Helper()
	b, err := domain.BoardOf(3, values)
	if err != nil {
		t.Fatalf("BoardOf: %v", err)
	}
	return b
}

func TestLineValid(t *testing.T) {
	cases := []struct {
		name string
		line []uint8
		want bool
	}{
		{"empty line", []uint8{0, 0, 0, 0, 0, 0, 0, 0, 0}, true},
		{"permutation", []uint8{9, 1, 8, 2, 7, 3, 6, 4, 5}, true},
		{"partial no dup", []uint8{1, 0, 0, 2, 0, 0, 3, 0, 0}, true},
		{"duplicate", []uint8{1, 0, 0, 1, 0, 0, 0, 0, 0}, false},
		{"zeros never duplicate", []uint8{0, 0, 5, 0, 0, 0, 0, 0, 0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LineValid(tc.line); got != tc.want {
				t.Fatalf("LineValid(%v) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestGridValidAndSolvedOnCompleteGrid(t *testing.T) {
	b := board9(t, solved9)
	if !GridValid(b) {
		t.Fatalf("GridValid rejected a valid complete grid")
	}
	if !Solved(b) {
		t.Fatalf("Solved rejected a valid complete grid")
	}
}

func TestGridValidDetectsDuplicates(t *testing.T) {
	// row duplicate
	b := board9(t, solved9)
	b.Values[0][0] = b.Values[0][8]
	if GridValid(b) {
		t.Fatalf("GridValid missed a row duplicate")
	}

	// column duplicate on an otherwise blank grid
	b, _ = domain.NewBoard(3)
	b.Values[1][4] = 6
	b.Values[7][4] = 6
	if GridValid(b) {
		t.Fatalf("GridValid missed a column duplicate")
	}

	// block duplicate that repeats in no row or column
	b, _ = domain.NewBoard(3)
	b.Values[0][0] = 3
	b.Values[1][1] = 3
	if GridValid(b) {
		t.Fatalf("GridValid missed a block duplicate")
	}
}

func TestSolvedRequiresNoBlanks(t *testing.T) {
	b := board9(t, solved9)
	b.Values[8][8] = 0
	if Solved(b) {
		t.Fatalf("Solved accepted a grid with a blank")
	}
	if !GridValid(b) {
		t.Fatalf("GridValid should still hold with a blank")
	}
}

func TestGridValid4x4(t *testing.T) {
	b, _ := domain.BoardOf(2, [][]uint8{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	if !Solved(b) {
		t.Fatalf("Solved rejected a valid 4x4 solution")
	}
	b.Values[3][3] = 4
	if GridValid(b) {
		t.Fatalf("GridValid missed a 4x4 duplicate")
	}
}

func TestFastValidatorConflicts(t *testing.T) {
	ctx := context.Background()
	b := board9(t, solved9)
	ok, conf, err := New().Validate(ctx, b)
	if err != nil || !ok || len(conf) != 0 {
		t.Fatalf("Validate(valid) = %v %v %v", ok, conf, err)
	}

	b, _ = domain.NewBoard(3)
	b.Values[2][0] = 5
	b.Values[2][6] = 5
	ok, conf, err = New().Validate(ctx, b)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ok || len(conf) == 0 {
		t.Fatalf("Validate missed a conflict: ok=%v conflicts=%v", ok, conf)
	}
}

func TestFastValidatorRejectsMalformed(t *testing.T) {
	bad := &domain.Board{Block: 3, Values: [][]uint8{{1, 2, 3}}}
	if _, _, err := New().Validate(context.Background(), bad); err == nil {
		t.Fatalf("Validate accepted a malformed board")
	}
}
