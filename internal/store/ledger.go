package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type ledgerRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// querier is the subset shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var accountColumns = []string{"user_id", "cash", "xp", "level", "title", "icon", "updated_at"}

func (r *ledgerRepo) Account(ctx context.Context, userID string) (*Account, error) {
	return getAccount(ctx, r.db, userID)
}

func getAccount(ctx context.Context, q querier, userID string) (*Account, error) {
	b := sqlite()
	query, args := b.Select(accountColumns...).
		From(b.Table(AccountsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var a Account
	err := q.QueryRowContext(ctx, query, args...).
		Scan(&a.UserID, &a.Cash, &a.XP, &a.Level, &a.Title, &a.Icon, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &Account{UserID: userID, Level: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &a, nil
}

func (r *ledgerRepo) SaveAccount(ctx context.Context, a *Account) error {
	return saveAccount(ctx, r.db, a)
}

func saveAccount(ctx context.Context, q querier, a *Account) error {
	a.UpdatedAt = now()
	query, args := sqlite().Insert(AccountsTable.Name).
		Columns(accountColumns...).
		Values(a.UserID, a.Cash, a.XP, a.Level, a.Title, a.Icon, a.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *ledgerRepo) Credit(ctx context.Context, userID string, amount int, description string) (*Transaction, error) {
	// The counter uses its own statement; take it before the transaction
	// claims the only connection.
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin credit: %w", err)
	}
	defer tx.Rollback()

	acct, err := getAccount(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	acct.Cash += amount
	if err := saveAccount(ctx, tx, acct); err != nil {
		return nil, err
	}

	t := &Transaction{
		Sequence:    seqNum,
		UserID:      userID,
		Amount:      amount,
		Balance:     acct.Cash,
		Description: description,
		CreatedAt:   now(),
	}
	query, args := sqlite().Insert(TransactionsTable.Name).
		Columns("sequence", "user_id", "amount", "balance", "description", "created_at").
		Values(t.Sequence, t.UserID, t.Amount, t.Balance, t.Description, t.CreatedAt).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("transaction id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit credit: %w", err)
	}
	return t, nil
}

func (r *ledgerRepo) Transactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	b := sqlite()
	sel := b.Select("id", "sequence", "user_id", "amount", "balance", "description", "created_at").
		From(b.Table(TransactionsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Sequence, &t.UserID, &t.Amount, &t.Balance, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
