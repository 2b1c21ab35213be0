// Package render provides Observer implementations for surfaces that
// want to watch the engine work. The engine itself never depends on
// any of them.
package render

import "log/slog"

// Slog traces every placement and clear at debug level.
type Slog struct {
	log *slog.Logger
}

func NewSlog(l *slog.Logger) *Slog { return &Slog{log: l} }

func (s *Slog) OnPlace(row, col int, value uint8) {
	s.log.Debug("place", "row", row, "col", col, "value", value)
}

func (s *Slog) OnClear(row, col int) {
	s.log.Debug("clear", "row", row, "col", col)
}
