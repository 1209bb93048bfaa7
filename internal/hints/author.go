package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/llm"
	"github.com/abhisek/familyhub/internal/store"
)

// MaxHintLength bounds generated hints so they fit on one drill line.
const MaxHintLength = 160

const systemPrompt = `You write memory tricks that help children aged 7 to 11 learn their multiplication tables.
A good trick is one or two short sentences, uses a rhyme, a pattern or a nearby fact the child already knows,
and always states the full fact with its answer in digits. Never use sarcasm or anything scary.`

var hintSchema = &llm.Schema{
	Name:        "multiplication-hint",
	Description: "A memory trick for one multiplication fact",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "The memory trick, including the answer in digits",
				"minLength":   10,
				"maxLength":   MaxHintLength,
			},
		},
		"required":             []string{"hint"},
		"additionalProperties": false,
	},
}

// ErrCurated is returned when asked to author a hint for a fact that
// already has a curated one.
var ErrCurated = errors.New("fact has a curated hint")

// Author generates hints with an LLM and stores them.
type Author struct {
	provider llm.Provider
	repo     store.HintRepo
	log      *zap.Logger
}

func NewAuthor(provider llm.Provider, repo store.HintRepo, log *zap.Logger) *Author {
	if log == nil {
		log = zap.NewNop()
	}
	return &Author{provider: provider, repo: repo, log: log}
}

// Generate authors and saves the hint for a×b, replacing any earlier one.
func (au *Author) Generate(ctx context.Context, a, b int) (*store.GeneratedHint, error) {
	f := facts.Canonical(a, b)
	if !f.Valid() {
		return nil, fmt.Errorf("fact %s out of range", f.Key())
	}
	if _, ok := facts.CuratedMnemonic(f.A, f.B); ok {
		return nil, fmt.Errorf("%s: %w", f.Key(), ErrCurated)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	prompt := fmt.Sprintf("Write a memory trick for %d × %d = %d.", f.A, f.B, f.Answer())
	resp, err := au.provider.Generate(ctx, llm.Prompt(systemPrompt, prompt, hintSchema, 256))
	if err != nil {
		return nil, fmt.Errorf("generate hint for %s: %w", f.Key(), err)
	}

	var out struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode hint for %s: %w", f.Key(), err)
	}
	hint := strings.TrimSpace(out.Hint)
	if !strings.Contains(hint, strconv.Itoa(f.Answer())) {
		return nil, fmt.Errorf("hint for %s: %w", f.Key(),
			&llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("answer %d not stated", f.Answer())})
	}

	model := resp.Model
	if model == "" {
		model = au.provider.ModelID()
	}
	h := &store.GeneratedHint{FactKey: f.Key(), Hint: hint, Model: model}
	if err := au.repo.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("save hint for %s: %w", f.Key(), err)
	}
	au.log.Info("hint generated", zap.String("fact", f.Key()), zap.String("model", model))
	return h, nil
}

// FillReport summarizes a Fill run.
type FillReport struct {
	Generated []string
	Skipped   int
}

// Fill authors hints for every fact that has neither a curated nor a
// stored hint. With overwrite set, stored hints are regenerated too.
// Per-fact failures are joined into the returned error; the rest of the
// run continues.
func (au *Author) Fill(ctx context.Context, overwrite bool) (FillReport, error) {
	var (
		report FillReport
		errs   []error
	)
	for _, f := range facts.Universe() {
		if _, ok := facts.CuratedMnemonic(f.A, f.B); ok {
			report.Skipped++
			continue
		}
		if !overwrite {
			existing, err := au.repo.Get(ctx, f.Key())
			if err != nil {
				return report, fmt.Errorf("load hint %s: %w", f.Key(), err)
			}
			if existing != nil {
				report.Skipped++
				continue
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		h, err := au.Generate(ctx, f.A, f.B)
		if err != nil {
			au.log.Warn("hint generation failed", zap.String("fact", f.Key()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		report.Generated = append(report.Generated, h.FactKey)
	}
	return report, errors.Join(errs...)
}
