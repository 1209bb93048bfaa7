package rewards

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/store"
)

// LedgerGranter credits rewards to the local ledger.
type LedgerGranter struct {
	ledger store.LedgerRepo
	log    *zap.Logger
}

// NewLedgerGranter creates a LedgerGranter. A nil logger discards output.
func NewLedgerGranter(ledger store.LedgerRepo, log *zap.Logger) *LedgerGranter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerGranter{ledger: ledger, log: log}
}

// Grant deposits the cash, adds the experience and equips the icon.
// Experience only ever goes up.
func (g *LedgerGranter) Grant(ctx context.Context, gr Grant) error {
	if gr.Cash > 0 {
		tx, err := g.ledger.Credit(ctx, gr.UserID, gr.Cash, gr.Description)
		if err != nil {
			return fmt.Errorf("credit cash: %w", err)
		}
		g.log.Info("cash credited",
			zap.String("user_id", gr.UserID),
			zap.Int("amount", gr.Cash),
			zap.Int("balance", tx.Balance))
	}

	acct, err := g.ledger.Account(ctx, gr.UserID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	before := LevelForXP(acct.XP)
	if gr.XP > 0 {
		acct.XP += gr.XP
	}
	after := LevelForXP(acct.XP)
	acct.Level = after.Number
	acct.Title = after.Title
	if gr.Icon != "" {
		acct.Icon = gr.Icon
	}

	if err := g.ledger.SaveAccount(ctx, acct); err != nil {
		return fmt.Errorf("save account: %w", err)
	}

	if after.Number > before.Number {
		g.log.Info("level up",
			zap.String("user_id", gr.UserID),
			zap.Int("from", before.Number),
			zap.Int("to", after.Number),
			zap.String("title", after.Title))
	}
	return nil
}
