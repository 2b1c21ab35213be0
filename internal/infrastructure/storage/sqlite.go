package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"svw.info/nsudoku/internal/domain"
)

// SQLite persists puzzles in a single-file database. The board is
// stored as its JSON encoding; listing metadata lives in indexed
// columns.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		seed       INTEGER NOT NULL DEFAULT 0,
		difficulty INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT 0,
		board      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at);
	CREATE INDEX IF NOT EXISTS idx_puzzles_difficulty ON puzzles(difficulty);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	if err := domain.Check(&p.Board); err != nil {
		return err
	}
	board, err := json.Marshal(&p.Board)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, name, notes, seed, difficulty, created_at, board)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			notes = excluded.notes,
			seed = excluded.seed,
			difficulty = excluded.difficulty,
			created_at = excluded.created_at,
			board = excluded.board`,
		p.ID, p.Name, p.Notes, p.Seed, int(p.Difficulty), p.CreatedAt, string(board))
	return err
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, notes, seed, difficulty, created_at, board
		FROM puzzles WHERE id = ?`, id)
	var p domain.Puzzle
	var diff int
	var board string
	err := row.Scan(&p.ID, &p.Name, &p.Notes, &p.Seed, &diff, &p.CreatedAt, &board)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, os.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	p.Difficulty = domain.Difficulty(diff)
	if err := json.Unmarshal([]byte(board), &p.Board); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, difficulty, created_at
		FROM puzzles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.PuzzleMeta
	for rows.Next() {
		var m domain.PuzzleMeta
		var diff int
		if err := rows.Scan(&m.ID, &m.Name, &diff, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Difficulty = domain.Difficulty(diff)
		out = append(out, m)
	}
	return out, rows.Err()
}
