package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/config"
	"github.com/abhisek/familyhub/internal/hints"
	"github.com/abhisek/familyhub/internal/llm"
	"github.com/abhisek/familyhub/internal/logging"
	"github.com/abhisek/familyhub/internal/mission"
	"github.com/abhisek/familyhub/internal/rewards"
	"github.com/abhisek/familyhub/internal/store"
)

// env is everything a command needs, opened from config and flags.
type env struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *store.Store
	book      *hints.Book
	engine    *mission.Engine
	publisher *rewards.AMQPGranter
}

// openEnv loads config, opens the store and wires the mission engine with
// the ledger granter, the optional AMQP publisher and the hint book.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.Storage.DBPath = p
	}

	log, err := logging.New(cfg.App.LogMode, cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st, book: hints.NewBook(st.HintRepo(), log)}

	granters := rewards.Multi{rewards.NewLedgerGranter(st.LedgerRepo(), log)}
	pub, err := rewards.NewAMQPGranter(cfg.Rewards.AMQPURL, cfg.Rewards.Exchange, log)
	if err != nil {
		// The ledger is the record of truth; a missing broker only loses
		// the notification.
		log.Warn("reward publisher unavailable", zap.Error(err))
	} else {
		e.publisher = pub
		if pub.Enabled() {
			granters = append(granters, pub)
		}
	}

	e.engine = mission.NewEngine(st.MissionRepo(), st.AssignmentRepo(), st.ProgressRepo(), mission.Config{
		Granter: granters,
		Hints:   e.book,
		Logger:  log,
	})
	return e, nil
}

func (e *env) Close() {
	if e.publisher != nil {
		if err := e.publisher.Close(); err != nil {
			e.log.Warn("close reward publisher", zap.Error(err))
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// provider builds the configured LLM provider for hint authoring.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	p, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return p, nil
}

// withEnv wraps a RunE body with openEnv and Close.
func withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(cmd, args, e)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

func parseOperand(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid operand %q", s)
	}
	return n, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSON decodes path into v; "-" reads the command's stdin.
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
