package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type progressRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var progressColumns = []string{
	"id", "assignment_id", "sequence", "session_type", "data",
	"score", "duration_seconds", "created_at",
}

func (r *progressRepo) Append(ctx context.Context, rec *ProgressRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	return insertProgress(ctx, r.db, seqNum, rec)
}

func (r *progressRepo) Commit(ctx context.Context, a *Assignment, rec *ProgressRecord) error {
	var seqNum int64
	if rec != nil {
		// Taken before the transaction claims the only connection. A
		// rollback leaves a gap, which ordering tolerates.
		var err error
		if seqNum, err = r.seq.Next(ctx); err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	if rec != nil {
		if err := insertProgress(ctx, tx, seqNum, rec); err != nil {
			return err
		}
	}
	if err := updateAssignment(ctx, tx, a); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

// insertProgress writes rec and fills in its ID, Sequence and CreatedAt.
func insertProgress(ctx context.Context, db querier, seqNum int64, rec *ProgressRecord) error {
	data := string(rec.Data)
	if data == "" {
		data = "{}"
	}
	created := now()

	q, args := sqlite().Insert(ProgressTable.Name).
		Columns(progressColumns[1:]...).
		Values(rec.AssignmentID, seqNum, rec.SessionType, data,
			rec.Score, nullableInt(rec.DurationSeconds), created).
		Query()
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("save progress record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("progress record id: %w", err)
	}

	rec.ID = id
	rec.Sequence = seqNum
	rec.CreatedAt = created
	return nil
}

func (r *progressRepo) List(ctx context.Context, assignmentID int64) ([]ProgressRecord, error) {
	b := sqlite()
	q, args := b.Select(progressColumns...).
		From(b.Table(ProgressTable.Name)).
		Where(entsql.EQ("assignment_id", assignmentID)).
		OrderBy(entsql.Desc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var (
			rec      ProgressRecord
			data     []byte
			duration sql.NullInt64
		)
		err := rows.Scan(&rec.ID, &rec.AssignmentID, &rec.Sequence, &rec.SessionType,
			&data, &rec.Score, &duration, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan progress record: %w", err)
		}
		rec.Data = data
		rec.DurationSeconds = intPtr(duration)
		out = append(out, rec)
	}
	return out, rows.Err()
}
