package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type missionRepo struct {
	db *sql.DB
}

var missionColumns = []string{
	"id", "title", "description", "mission_type", "config",
	"reward_cash", "reward_icon", "reward_xp", "reward_description",
	"gem_type", "gem_size", "created_at",
}

func (r *missionRepo) Create(ctx context.Context, m *Mission) error {
	cfg, err := jsonText(m.Config)
	if err != nil {
		return fmt.Errorf("marshal mission config: %w", err)
	}
	m.CreatedAt = now()

	q, args := sqlite().Insert(MissionsTable.Name).
		Columns(missionColumns[1:]...).
		Values(m.Title, m.Description, m.Type, cfg,
			m.RewardCash, m.RewardIcon, m.RewardXP, m.RewardDescription,
			m.GemType, m.GemSize, m.CreatedAt).
		Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("save mission: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("mission id: %w", err)
	}
	return nil
}

func (r *missionRepo) Get(ctx context.Context, id int64) (*Mission, error) {
	return r.first(ctx, entsql.EQ("id", id))
}

func (r *missionRepo) GetByTitle(ctx context.Context, title string) (*Mission, error) {
	return r.first(ctx, entsql.EQ("title", title))
}

func (r *missionRepo) first(ctx context.Context, p *entsql.Predicate) (*Mission, error) {
	b := sqlite()
	q, args := b.Select(missionColumns...).
		From(b.Table(MissionsTable.Name)).
		Where(p).
		Limit(1).
		Query()

	m, err := scanMission(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mission: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query mission: %w", err)
	}
	return m, nil
}

func (r *missionRepo) List(ctx context.Context) ([]Mission, error) {
	b := sqlite()
	q, args := b.Select(missionColumns...).
		From(b.Table(MissionsTable.Name)).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mission: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func scanMission(s rowScanner) (*Mission, error) {
	var (
		m   Mission
		cfg []byte
	)
	err := s.Scan(&m.ID, &m.Title, &m.Description, &m.Type, &cfg,
		&m.RewardCash, &m.RewardIcon, &m.RewardXP, &m.RewardDescription,
		&m.GemType, &m.GemSize, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &m.Config); err != nil {
			return nil, fmt.Errorf("unmarshal mission config: %w", err)
		}
	}
	return &m, nil
}
