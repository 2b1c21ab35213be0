package hint

import (
	"context"
	"fmt"

	"svw.info/nsudoku/internal/candidate"
	"svw.info/nsudoku/internal/domain"
)

// Singles suggests naked singles first, then row/column hidden singles,
// the same deductions the propagation engine applies.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first single found if max tier allows it.
func (h *Singles) Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error) {
	if err := domain.Check(b); err != nil {
		return domain.Hint{}, false, err
	}
	if max < domain.StrategySingles {
		return domain.Hint{}, false, nil
	}
	tensor := candidate.TensorOf(b)
	size := b.Size()

	// naked singles
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if v, ok := tensor[domain.CellCoord{Row: r, Col: c}].Sole(); ok {
				return domain.Hint{
					Message:  fmt.Sprintf("Single: only %d fits here", v),
					Value:    v,
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}

	// hidden singles by column
	for c := 0; c < size; c++ {
		for v := uint8(1); int(v) <= size; v++ {
			if r, ok := soleRow(tensor, size, c, v); ok {
				return domain.Hint{
					Message:  fmt.Sprintf("Hidden single: %d has one spot left in this column", v),
					Value:    v,
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}

	// hidden singles by row
	for r := 0; r < size; r++ {
		for v := uint8(1); int(v) <= size; v++ {
			if c, ok := soleCol(tensor, size, r, v); ok {
				return domain.Hint{
					Message:  fmt.Sprintf("Hidden single: %d has one spot left in this row", v),
					Value:    v,
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}
	return domain.Hint{}, false, nil
}

func soleRow(tensor candidate.Tensor, size, c int, v uint8) (int, bool) {
	hit, n := -1, 0
	for r := 0; r < size; r++ {
		if tensor[domain.CellCoord{Row: r, Col: c}].Has(v) {
			hit = r
			n++
		}
	}
	return hit, n == 1
}

func soleCol(tensor candidate.Tensor, size, r int, v uint8) (int, bool) {
	hit, n := -1, 0
	for c := 0; c < size; c++ {
		if tensor[domain.CellCoord{Row: r, Col: c}].Has(v) {
			hit = c
			n++
		}
	}
	return hit, n == 1
}
