package llm

import "github.com/abhisek/familyhub/internal/store"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// Prices for the models the default configs and aliases resolve to, plus
// their common neighbours.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":          {1, 5},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},
	"claude-3-5-haiku-latest":   {0.8, 4},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gpt-4.1-mini":              {0.4, 1.6},
	"gpt-4.1-nano":              {0.1, 0.4},
	"gpt-5-mini":                {0.25, 2},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.0-flash-lite":     {0.075, 0.3},
	"gemini-2.5-flash":          {0.3, 2.5},
	"gemini-2.5-pro":            {1.25, 10},
}

// LookupCost returns nil for unpriced models.
func LookupCost(model string) *ModelCost {
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}

// UsageSummary aggregates logged requests for one model.
type UsageSummary struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	// CostUSD is zero when the model has no price entry; Priced says
	// which case applies.
	CostUSD float64
	Priced  bool
}

// Summarize groups records by model in first-seen order.
func Summarize(records []store.LLMRequestRecord) []UsageSummary {
	index := map[string]int{}
	var out []UsageSummary
	for _, r := range records {
		i, ok := index[r.Model]
		if !ok {
			i = len(out)
			index[r.Model] = i
			out = append(out, UsageSummary{Model: r.Model})
		}
		s := &out[i]
		s.Requests++
		if !r.Success {
			s.Failures++
		}
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.OutputTokens
	}
	for i := range out {
		if c := LookupCost(out[i].Model); c != nil {
			out[i].Priced = true
			out[i].CostUSD = c.Cost(out[i].InputTokens, out[i].OutputTokens)
		}
	}
	return out
}
