package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type hintRepo struct {
	db *sql.DB
}

func (r *hintRepo) Save(ctx context.Context, h *GeneratedHint) error {
	h.CreatedAt = now()
	q, args := sqlite().Insert(HintsTable.Name).
		Columns("fact_key", "hint", "model", "created_at").
		Values(h.FactKey, h.Hint, h.Model, h.CreatedAt).
		OnConflict(
			entsql.ConflictColumns("fact_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save hint: %w", err)
	}
	return nil
}

func (r *hintRepo) Get(ctx context.Context, factKey string) (*GeneratedHint, error) {
	b := sqlite()
	q, args := b.Select("fact_key", "hint", "model", "created_at").
		From(b.Table(HintsTable.Name)).
		Where(entsql.EQ("fact_key", factKey)).
		Query()

	var h GeneratedHint
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&h.FactKey, &h.Hint, &h.Model, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query hint: %w", err)
	}
	return &h, nil
}

func (r *hintRepo) List(ctx context.Context) ([]GeneratedHint, error) {
	b := sqlite()
	q, args := b.Select("fact_key", "hint", "model", "created_at").
		From(b.Table(HintsTable.Name)).
		OrderBy("fact_key").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query hints: %w", err)
	}
	defer rows.Close()

	var out []GeneratedHint
	for rows.Next() {
		var h GeneratedHint
		if err := rows.Scan(&h.FactKey, &h.Hint, &h.Model, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hint: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
