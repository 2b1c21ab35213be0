package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svw.info/nsudoku/internal/domain"
)

// FS persists puzzles as pretty-printed JSON files under one
// subdirectory per difficulty.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func diffDir(d domain.Difficulty) string {
	switch d {
	case domain.Easy:
		return "easy"
	case domain.Hard:
		return "hard"
	case domain.Expert:
		return "expert"
	default:
		return "medium"
	}
}

var allDiffs = []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert}

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, diffDir(d), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	if err := domain.Check(&p.Board); err != nil {
		return err
	}
	target := s.pathFor(p.ID, p.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	for _, d := range allDiffs {
		data, err := os.ReadFile(s.pathFor(id, d))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Puzzle
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		if out.Difficulty == 0 {
			out.Difficulty = d // infer from the folder if absent
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	for _, d := range allDiffs {
		dir := filepath.Join(s.dir, diffDir(d))
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var m domain.PuzzleMeta
			if err := json.Unmarshal(data, &m); err != nil || m.ID == "" {
				continue
			}
			if m.Difficulty == 0 {
				m.Difficulty = d
			}
			out = append(out, m)
		}
	}
	return out, nil
}
