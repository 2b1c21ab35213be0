package ports

import (
	"context"
	"time"

	"svw.info/nsudoku/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver solves a board and can test uniqueness. Solve reports an
// unsolvable puzzle structurally: the returned board equals the input
// and is not solved. Errors are reserved for contract violations
// (malformed or inconsistent input) and cancellation.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (*domain.Board, Stats, error)
	Unique(ctx context.Context, b *domain.Board) (bool, Stats, error)
}

// Generator creates new puzzles at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, block int, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator performs fast constraint checks (row/col/block).
type Validator interface {
	Validate(ctx context.Context, b *domain.Board) (ok bool, conflicts []domain.CellCoord, err error)
}

// Hinter returns the next logical step up to a max strategy tier.
type Hinter interface {
	Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}

// Observer receives cell placement and clear notifications from the
// solving engine, e.g. to drive a rendering surface. Calls are
// synchronous and fire-and-forget; the engine never reads anything
// back and behaves identically when the observer is nil.
type Observer interface {
	OnPlace(row, col int, value uint8)
	OnClear(row, col int)
}

// NotifyPlace forwards a placement to o if an observer is attached.
func NotifyPlace(o Observer, row, col int, value uint8) {
	if o != nil {
		o.OnPlace(row, col, value)
	}
}

// NotifyClear forwards a clear to o if an observer is attached.
func NotifyClear(o Observer, row, col int) {
	if o != nil {
		o.OnClear(row, col)
	}
}
