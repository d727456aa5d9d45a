package analyzer

import (
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// ModelPricing holds per-million-token pricing for one model.
type ModelPricing struct {
	InputPerMillion      float64 `json:"input"`
	OutputPerMillion     float64 `json:"output"`
	CacheReadPerMillion  float64 `json:"cacheRead"`
	CacheWritePerMillion float64 `json:"cacheWrite"`
}

// PricingTable maps model identifiers to published API pricing. It is
// configuration data, not derived from sessions, and needs a manual
// update when new models launch; ids missing here fall back to
// DefaultPricing rather than failing.
var PricingTable = map[string]ModelPricing{
	"claude-opus-4-5-20251101": {
		InputPerMillion:      15.0,
		OutputPerMillion:     75.0,
		CacheReadPerMillion:  1.5,
		CacheWritePerMillion: 18.75,
	},
	"claude-sonnet-4-20250514": {
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheReadPerMillion:  0.3,
		CacheWritePerMillion: 3.75,
	},
	"claude-3-5-sonnet-20241022": {
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheReadPerMillion:  0.3,
		CacheWritePerMillion: 3.75,
	},
	"claude-3-5-haiku-20241022": {
		InputPerMillion:      0.8,
		OutputPerMillion:     4.0,
		CacheReadPerMillion:  0.08,
		CacheWritePerMillion: 1.0,
	},
}

// DefaultPricing is the fallback row for unrecognized model ids
// (mid-tier rates).
var DefaultPricing = ModelPricing{
	InputPerMillion:      3.0,
	OutputPerMillion:     15.0,
	CacheReadPerMillion:  0.3,
	CacheWritePerMillion: 3.75,
}

// ModelCost is the computed cost plus the token counts it came from.
type ModelCost struct {
	Cost             float64 `json:"cost"`
	InputTokens      int64   `json:"inputTokens"`
	OutputTokens     int64   `json:"outputTokens"`
	CacheReadTokens  int64   `json:"cacheReadTokens"`
	CacheWriteTokens int64   `json:"cacheWriteTokens"`
}

// CostBreakdown is the full cost result across models.
type CostBreakdown struct {
	Total   float64              `json:"total"`
	ByModel map[string]ModelCost `json:"byModel"`
}

// PricingFor returns the pricing row for a model id, or DefaultPricing
// when the id is not in the table.
func PricingFor(model string) ModelPricing {
	if p, ok := PricingTable[model]; ok {
		return p
	}
	return DefaultPricing
}

// tokensToCost converts a token count to dollars at a per-million rate.
func tokensToCost(tokens int64, perMillion float64) float64 {
	return float64(tokens) / 1_000_000.0 * perMillion
}

// CalculateCost computes the dollar cost of one model's token usage.
func CalculateCost(model string, usage claude.ModelUsage) float64 {
	p := PricingFor(model)
	return tokensToCost(usage.InputTokens, p.InputPerMillion) +
		tokensToCost(usage.OutputTokens, p.OutputPerMillion) +
		tokensToCost(usage.CacheReadInputTokens, p.CacheReadPerMillion) +
		tokensToCost(usage.CacheCreationInputTokens, p.CacheWritePerMillion)
}

// CalculateModelCosts computes per-model costs and their sum. Cost is
// linear and additive: disjoint models sum, doubled tokens double cost.
func CalculateModelCosts(usage map[string]claude.ModelUsage) CostBreakdown {
	breakdown := CostBreakdown{ByModel: make(map[string]ModelCost, len(usage))}
	for model, u := range usage {
		cost := CalculateCost(model, u)
		breakdown.ByModel[model] = ModelCost{
			Cost:             cost,
			InputTokens:      u.InputTokens,
			OutputTokens:     u.OutputTokens,
			CacheReadTokens:  u.CacheReadInputTokens,
			CacheWriteTokens: u.CacheCreationInputTokens,
		}
		breakdown.Total += cost
	}
	return breakdown
}
