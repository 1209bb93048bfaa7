package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type assignmentRepo struct {
	db *sql.DB
}

var assignmentColumns = []string{
	"id", "mission_id", "user_id", "state", "current_level",
	"notified", "assigned_at", "started_at", "completed_at",
}

func (r *assignmentRepo) Create(ctx context.Context, a *Assignment) error {
	if a.AssignedAt.IsZero() {
		a.AssignedAt = now()
	}
	q, args := sqlite().Insert(AssignmentsTable.Name).
		Columns(assignmentColumns[1:]...).
		Values(a.MissionID, a.UserID, a.State, a.CurrentLevel, a.Notified,
			a.AssignedAt.UTC(), nullableTime(a.StartedAt), nullableTime(a.CompletedAt)).
		Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("assignment id: %w", err)
	}
	return nil
}

func (r *assignmentRepo) Get(ctx context.Context, id int64) (*Assignment, error) {
	return r.first(ctx, entsql.EQ("id", id))
}

func (r *assignmentRepo) Find(ctx context.Context, missionID int64, userID string) (*Assignment, error) {
	return r.first(ctx, entsql.And(
		entsql.EQ("mission_id", missionID),
		entsql.EQ("user_id", userID),
	))
}

func (r *assignmentRepo) first(ctx context.Context, p *entsql.Predicate) (*Assignment, error) {
	b := sqlite()
	q, args := b.Select(assignmentColumns...).
		From(b.Table(AssignmentsTable.Name)).
		Where(p).
		Limit(1).
		Query()

	a, err := scanAssignment(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assignment: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query assignment: %w", err)
	}
	return a, nil
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string) ([]Assignment, error) {
	return r.list(ctx, entsql.EQ("user_id", userID))
}

func (r *assignmentRepo) Unnotified(ctx context.Context, userID string) ([]Assignment, error) {
	return r.list(ctx, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("notified", false),
	))
}

func (r *assignmentRepo) list(ctx context.Context, p *entsql.Predicate) ([]Assignment, error) {
	b := sqlite()
	q, args := b.Select(assignmentColumns...).
		From(b.Table(AssignmentsTable.Name)).
		Where(p).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *assignmentRepo) Update(ctx context.Context, a *Assignment) error {
	return updateAssignment(ctx, r.db, a)
}

func updateAssignment(ctx context.Context, db querier, a *Assignment) error {
	q, args := sqlite().Update(AssignmentsTable.Name).
		Set("state", a.State).
		Set("current_level", a.CurrentLevel).
		Set("notified", a.Notified).
		Set("started_at", nullableTime(a.StartedAt)).
		Set("completed_at", nullableTime(a.CompletedAt)).
		Where(entsql.EQ("id", a.ID)).
		Query()
	return execAssignment(ctx, db, q, args)
}

func (r *assignmentRepo) MarkNotified(ctx context.Context, id int64) error {
	q, args := sqlite().Update(AssignmentsTable.Name).
		Set("notified", true).
		Where(entsql.EQ("id", id)).
		Query()
	return execAssignment(ctx, r.db, q, args)
}

func execAssignment(ctx context.Context, db querier, q string, args []any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assignment: %w", ErrNotFound)
	}
	return nil
}

func scanAssignment(s rowScanner) (*Assignment, error) {
	var (
		a                  Assignment
		started, completed sql.NullTime
	)
	err := s.Scan(&a.ID, &a.MissionID, &a.UserID, &a.State, &a.CurrentLevel,
		&a.Notified, &a.AssignedAt, &started, &completed)
	if err != nil {
		return nil, err
	}
	a.StartedAt = timePtr(started)
	a.CompletedAt = timePtr(completed)
	return &a, nil
}
