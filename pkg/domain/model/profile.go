package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

// Keyword is a weighted risk signal term used in category research prompts
type Keyword struct {
	Term      string  `json:"term" toml:"term"`
	Weight    float64 `json:"weight" toml:"weight"`
	Sentiment string  `json:"sentiment" toml:"sentiment"`
}

// CategoryProfile describes what one category agent researches: the
// analysis parameters and the weighted keywords it reports on
type CategoryProfile struct {
	Category   types.RiskCategory `json:"category" toml:"category"`
	Parameters []string           `json:"parameters" toml:"parameters"`
	Keywords   []Keyword          `json:"keywords" toml:"keywords"`
}

// RiskProfile holds the per-category research profiles for an analysis run
type RiskProfile struct {
	Categories []CategoryProfile `json:"categories" toml:"categories"`
}

// For returns the profile for a category, falling back to an empty profile
// for categories the profile does not cover
func (p *RiskProfile) For(category types.RiskCategory) CategoryProfile {
	for _, cp := range p.Categories {
		if cp.Category == category {
			return cp
		}
	}
	return CategoryProfile{Category: category}
}

// Validate checks that every entry names a known category, no category is
// duplicated, and keyword weights stay within [0, 1]
func (p *RiskProfile) Validate() error {
	seen := make(map[types.RiskCategory]bool)
	for _, cp := range p.Categories {
		if !cp.Category.IsValid() {
			return goerr.New("unknown risk category", goerr.V("category", cp.Category))
		}
		if seen[cp.Category] {
			return goerr.New("duplicate risk category", goerr.V("category", cp.Category))
		}
		seen[cp.Category] = true

		for _, kw := range cp.Keywords {
			if kw.Term == "" {
				return goerr.New("keyword term is required", goerr.V("category", cp.Category))
			}
			if kw.Weight < 0 || kw.Weight > 1 {
				return goerr.New("keyword weight must be between 0 and 1",
					goerr.V("category", cp.Category),
					goerr.V("term", kw.Term),
					goerr.V("weight", kw.Weight))
			}
		}
	}
	return nil
}

// Merge overlays the receiver's entries onto the default profile. Categories
// absent from the receiver keep their defaults.
func (p *RiskProfile) Merge(defaults *RiskProfile) *RiskProfile {
	merged := &RiskProfile{}
	for _, category := range types.Categories() {
		cp := defaults.For(category)
		for _, override := range p.Categories {
			if override.Category == category {
				cp = override
				break
			}
		}
		merged.Categories = append(merged.Categories, cp)
	}
	return merged
}

// DefaultRiskProfile returns the built-in research profile covering all five
// risk categories
func DefaultRiskProfile() *RiskProfile {
	return &RiskProfile{
		Categories: []CategoryProfile{
			{
				Category: types.CategoryMarket,
				Parameters: []string{
					"Yield curve shifts", "Central bank policies", "Bond prices",
					"Duration gap", "Interest-sensitive assets/liabilities",
				},
				Keywords: []Keyword{
					{Term: "Rate Hike", Weight: 0.90, Sentiment: "Negative"},
					{Term: "Inverted Yield Curve", Weight: 0.85, Sentiment: "Negative"},
					{Term: "Monetary Tightening", Weight: 0.80, Sentiment: "Negative"},
					{Term: "Rate Cut", Weight: 0.30, Sentiment: "Positive"},
					{Term: "Interest Margin", Weight: 0.50, Sentiment: "Neutral-Positive"},
				},
			},
			{
				Category: types.CategoryCredit,
				Parameters: []string{
					"Loan default rate", "Counterparty exposure",
					"Credit default swap spreads", "Loan quality",
				},
				Keywords: []Keyword{
					{Term: "Non-performing Loans (NPL)", Weight: 0.90, Sentiment: "Negative"},
					{Term: "Credit Downgrade", Weight: 0.85, Sentiment: "Negative"},
					{Term: "Default Risk", Weight: 0.88, Sentiment: "Negative"},
					{Term: "Credit Spread Widening", Weight: 0.80, Sentiment: "Negative"},
					{Term: "Loan Recovery Rate", Weight: 0.40, Sentiment: "Positive"},
				},
			},
			{
				Category: types.CategoryLiquidity,
				Parameters: []string{
					"Liquidity coverage ratio (LCR)", "Asset-liability mismatch",
					"Interbank market conditions",
				},
				Keywords: []Keyword{
					{Term: "Funding Shortfall", Weight: 0.90, Sentiment: "Negative"},
					{Term: "Liquidity Crunch", Weight: 0.88, Sentiment: "Negative"},
					{Term: "Deposit Outflow", Weight: 0.85, Sentiment: "Negative"},
					{Term: "Liquidity Injection", Weight: 0.35, Sentiment: "Positive"},
					{Term: "Short-Term Debt Exposure", Weight: 0.80, Sentiment: "Negative"},
				},
			},
			{
				Category: types.CategoryOperational,
				Parameters: []string{
					"Cybersecurity incidents", "Fraud", "System failures",
					"Internal control weaknesses",
				},
				Keywords: []Keyword{
					{Term: "Cyber Attack", Weight: 0.95, Sentiment: "Negative"},
					{Term: "System Outage", Weight: 0.85, Sentiment: "Negative"},
					{Term: "Internal Fraud", Weight: 0.90, Sentiment: "Negative"},
					{Term: "Process Failure", Weight: 0.75, Sentiment: "Negative"},
					{Term: "Resilience Framework", Weight: 0.30, Sentiment: "Positive"},
				},
			},
			{
				Category: types.CategoryRegulatory,
				Parameters: []string{
					"Regulatory fines", "Basel III compliance",
					"Cross-border compliance", "AML/CTF adherence",
				},
				Keywords: []Keyword{
					{Term: "Regulatory Fine", Weight: 0.90, Sentiment: "Negative"},
					{Term: "Compliance Breach", Weight: 0.85, Sentiment: "Negative"},
					{Term: "AML Violation", Weight: 0.88, Sentiment: "Negative"},
					{Term: "Capital Adequacy", Weight: 0.45, Sentiment: "Positive"},
					{Term: "Basel Non-compliance", Weight: 0.80, Sentiment: "Negative"},
				},
			},
		},
	}
}
