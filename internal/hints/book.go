// Package hints resolves and authors the memory aids shown for
// multiplication facts.
package hints

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/store"
)

// Book layers generated hints between the curated table and the generic
// template. Curated hints always win.
type Book struct {
	repo store.HintRepo
	log  *zap.Logger
}

func NewBook(repo store.HintRepo, log *zap.Logger) *Book {
	if log == nil {
		log = zap.NewNop()
	}
	return &Book{repo: repo, log: log}
}

// Lookup never fails. A storage error falls back to the template and is
// logged.
func (k *Book) Lookup(ctx context.Context, a, b int) string {
	if hint, ok := facts.CuratedMnemonic(a, b); ok {
		return hint
	}
	f := facts.Canonical(a, b)
	if !f.Valid() || k.repo == nil {
		return facts.DefaultMnemonic(a * b)
	}

	h, err := k.repo.Get(ctx, f.Key())
	if err != nil {
		k.log.Warn("hint lookup failed", zap.String("fact", f.Key()), zap.Error(err))
		return facts.DefaultMnemonic(f.Answer())
	}
	if h == nil || h.Hint == "" {
		return facts.DefaultMnemonic(f.Answer())
	}
	return h.Hint
}

// Source reports where Lookup would take the hint for a×b from.
type Source string

const (
	SourceCurated   Source = "curated"
	SourceGenerated Source = "generated"
	SourceTemplate  Source = "template"
)

// Entry is one row of the hint catalogue.
type Entry struct {
	Fact   facts.Fact
	Hint   string
	Source Source
	Model  string
}

// Catalogue lists every fact in the universe with its effective hint.
func (k *Book) Catalogue(ctx context.Context) ([]Entry, error) {
	generated := map[string]store.GeneratedHint{}
	if k.repo != nil {
		list, err := k.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, h := range list {
			generated[h.FactKey] = h
		}
	}

	var out []Entry
	for _, f := range facts.Universe() {
		e := Entry{Fact: f, Source: SourceTemplate, Hint: facts.DefaultMnemonic(f.Answer())}
		if hint, ok := facts.CuratedMnemonic(f.A, f.B); ok {
			e.Hint, e.Source = hint, SourceCurated
		} else if h, ok := generated[f.Key()]; ok && h.Hint != "" {
			e.Hint, e.Source, e.Model = h.Hint, SourceGenerated, h.Model
		}
		out = append(out, e)
	}
	return out, nil
}
