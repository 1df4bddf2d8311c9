package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

// CategoryResult is the structured outcome of one per-category analysis.
// It is created once from the raw agent output and never mutated.
type CategoryResult struct {
	Name        types.RiskCategory `json:"-"`
	Label       string             `json:"name"`
	Summary     string             `json:"summary"`
	ImpactScore types.Score        `json:"impact_score"`
}

// NewCategoryResult builds an immutable CategoryResult for the given category.
func NewCategoryResult(category types.RiskCategory, summary string, score types.Score) CategoryResult {
	return CategoryResult{
		Name:        category,
		Label:       category.Label(),
		Summary:     summary,
		ImpactScore: score,
	}
}

// AggregateResult is the consolidated report over all risk categories.
// Risks is always complete: one entry per category, in enumeration order.
type AggregateResult struct {
	Risks          []CategoryResult `json:"risks"`
	FinalRiskScore types.Score      `json:"final_risk_score"`
}

// Validate checks structural invariants of the aggregate result:
// full category coverage in enumeration order, scores in range, and the
// final score equal to the mean of the per-category scores.
func (r *AggregateResult) Validate() error {
	categories := types.Categories()
	if len(r.Risks) != len(categories) {
		return goerr.New("aggregate result must cover all categories",
			goerr.V("expected", len(categories)), goerr.V("actual", len(r.Risks)))
	}

	var sum types.Score
	for i, risk := range r.Risks {
		if risk.Name != categories[i] {
			return goerr.New("risks out of enumeration order",
				goerr.V("position", i), goerr.V("category", risk.Name))
		}
		if err := risk.ImpactScore.Validate(); err != nil {
			return goerr.Wrap(err, "invalid impact score", goerr.V("category", risk.Name))
		}
		sum += risk.ImpactScore
	}

	mean := (sum / types.Score(len(categories))).Round2()
	if r.FinalRiskScore != mean {
		return goerr.New("final risk score does not equal mean of impact scores",
			goerr.V("final", r.FinalRiskScore.Float()), goerr.V("mean", mean.Float()))
	}

	return nil
}
