package store

import (
	"context"
)

func (s *Store) BuilderExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(1) FROM builders WHERE id = $1`, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ListBuilders(ctx context.Context) ([]Builder, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, website, created_at FROM builders ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Builder
	for rows.Next() {
		var b Builder
		if err := rows.Scan(&b.ID, &b.Name, &b.Website, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBuilder(ctx context.Context, b *Builder) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO builders (id, name, website) VALUES ($1,$2,$3)`,
		b.ID, b.Name, b.Website,
	)
	return err
}
