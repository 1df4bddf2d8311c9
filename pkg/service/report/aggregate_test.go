package report_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
	"github.com/fintel-lab/pentarisk/pkg/service/report"
)

func testFallback() map[types.RiskCategory]model.CategoryResult {
	fallback := map[types.RiskCategory]model.CategoryResult{}
	scores := []types.Score{0.11, 0.22, 0.33, 0.44, 0.55}
	for i, c := range types.Categories() {
		fallback[c] = model.NewCategoryResult(c, "fallback summary for "+c.Label(), scores[i])
	}
	return fallback
}

const wellFormedTable = `| Risk Name | Impact Score |
| Market Risk | 0.8 |
| Credit Risk | 0.6 |
| Liquidity Risk | 0.4 |
| Operational Risk | 0.9 |
| Regulatory/Compliance Risk | 0.5 |
`

func TestAggregate_Table(t *testing.T) {
	t.Run("well-formed table without list", func(t *testing.T) {
		result := report.Aggregate(wellFormedTable, testFallback())

		gt.NoError(t, result.Validate()).Required()
		gt.Value(t, result.FinalRiskScore).Equal(types.Score(0.64))

		want := []types.Score{0.8, 0.6, 0.4, 0.9, 0.5}
		for i, risk := range result.Risks {
			gt.Value(t, risk.ImpactScore).Equal(want[i])
			gt.Value(t, risk.Summary).Equal("")
		}
	})

	t.Run("no table uses fallback for every category", func(t *testing.T) {
		fallback := testFallback()
		result := report.Aggregate("The supervisor produced free text only.", fallback)

		gt.NoError(t, result.Validate()).Required()
		for i, c := range types.Categories() {
			gt.Value(t, result.Risks[i].ImpactScore).Equal(fallback[c].ImpactScore)
		}
		// mean of 0.11+0.22+0.33+0.44+0.55 = 0.33
		gt.Value(t, result.FinalRiskScore).Equal(types.Score(0.33))
	})

	t.Run("unparsable cell falls back by position", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0.8 |
| Credit Risk | 0.6 |
| Liquidity Risk | high |
| Operational Risk | 0.9 |
| Regulatory/Compliance Risk | 0.5 |
`
		fallback := testFallback()
		result := report.Aggregate(synthesis, fallback)

		// The third row resolves to the liquidity fallback, not to 0.0 and
		// not to a dropped category.
		gt.Value(t, result.Risks[2].Name).Equal(types.CategoryLiquidity)
		gt.Value(t, result.Risks[2].ImpactScore).Equal(fallback[types.CategoryLiquidity].ImpactScore)
		gt.Array(t, result.Risks).Length(5)
		gt.NoError(t, result.Validate())
	})

	t.Run("malformed row is skipped and receives fallback", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0.8 |
| Credit Risk |
| Liquidity Risk | 0.4 |
| Operational Risk | 0.9 |
| Regulatory/Compliance Risk | 0.5 |
`
		fallback := testFallback()
		result := report.Aggregate(synthesis, fallback)

		gt.Value(t, result.Risks[0].ImpactScore).Equal(types.Score(0.8))
		gt.Value(t, result.Risks[1].ImpactScore).Equal(fallback[types.CategoryCredit].ImpactScore)
		gt.NoError(t, result.Validate())
	})

	t.Run("short table fills remaining categories from fallback", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0.8 |
| Credit Risk | 0.6 |
`
		fallback := testFallback()
		result := report.Aggregate(synthesis, fallback)

		gt.Value(t, result.Risks[0].ImpactScore).Equal(types.Score(0.8))
		gt.Value(t, result.Risks[1].ImpactScore).Equal(types.Score(0.6))
		for i := 2; i < 5; i++ {
			c := types.Categories()[i]
			gt.Value(t, result.Risks[i].ImpactScore).Equal(fallback[c].ImpactScore)
		}
	})

	t.Run("rows beyond the category count are ignored", func(t *testing.T) {
		synthesis := wellFormedTable + "| Extra Risk | 0.99 |\n"
		result := report.Aggregate(synthesis, testFallback())
		gt.Array(t, result.Risks).Length(5)
		gt.Value(t, result.FinalRiskScore).Equal(types.Score(0.64))
	})

	t.Run("positional matching ignores row labels", func(t *testing.T) {
		// Labels do not match the enumeration; positions still decide.
		synthesis := `| Risk Name | Impact Score |
| Something Else | 0.1 |
| Whatever | 0.2 |
| Label C | 0.3 |
| Label D | 0.4 |
| Label E | 0.5 |
`
		result := report.Aggregate(synthesis, testFallback())
		want := []types.Score{0.1, 0.2, 0.3, 0.4, 0.5}
		for i, risk := range result.Risks {
			gt.Value(t, risk.ImpactScore).Equal(want[i])
		}
	})

	t.Run("all-zero scores mean zero", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0 |
| Credit Risk | 0 |
| Liquidity Risk | 0 |
| Operational Risk | 0 |
| Regulatory/Compliance Risk | 0 |
`
		result := report.Aggregate(synthesis, testFallback())
		gt.Value(t, result.FinalRiskScore).Equal(types.Score(0))
		gt.NoError(t, result.Validate())
	})

	t.Run("blank line terminates the table", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0.8 |

| Credit Risk | 0.6 |
`
		fallback := testFallback()
		result := report.Aggregate(synthesis, fallback)
		gt.Value(t, result.Risks[0].ImpactScore).Equal(types.Score(0.8))
		gt.Value(t, result.Risks[1].ImpactScore).Equal(fallback[types.CategoryCredit].ImpactScore)
	})

	t.Run("scores are rounded to two decimals", func(t *testing.T) {
		synthesis := `| Risk Name | Impact Score |
| Market Risk | 0.333 |
| Credit Risk | 0.666 |
| Liquidity Risk | 0.5 |
| Operational Risk | 0.5 |
| Regulatory/Compliance Risk | 0.5 |
`
		result := report.Aggregate(synthesis, testFallback())
		gt.Value(t, result.Risks[0].ImpactScore).Equal(types.Score(0.33))
		gt.Value(t, result.Risks[1].ImpactScore).Equal(types.Score(0.67))
	})
}

func TestAggregate_Summaries(t *testing.T) {
	t.Run("numbered list assigned positionally", func(t *testing.T) {
		synthesis := `1. Market summary text.
2. Credit summary text.
3. Liquidity summary text.
4. Operational summary text.
5. Regulatory summary text.

` + wellFormedTable
		result := report.Aggregate(synthesis, testFallback())

		gt.Value(t, result.Risks[0].Summary).Equal("Market summary text.")
		gt.Value(t, result.Risks[1].Summary).Equal("Credit summary text.")
		gt.Value(t, result.Risks[2].Summary).Equal("Liquidity summary text.")
		gt.Value(t, result.Risks[3].Summary).Equal("Operational summary text.")
		gt.Value(t, result.Risks[4].Summary).Equal("Regulatory summary text.")
	})

	t.Run("item content need not match category names", func(t *testing.T) {
		synthesis := `1. Regulatory fines dominate the outlook.
2. Cyber attack exposure is elevated.
` + wellFormedTable
		result := report.Aggregate(synthesis, testFallback())

		// Item i maps to category i regardless of content.
		gt.Value(t, result.Risks[0].Summary).Equal("Regulatory fines dominate the outlook.")
		gt.Value(t, result.Risks[1].Summary).Equal("Cyber attack exposure is elevated.")
		gt.Value(t, result.Risks[2].Summary).Equal("")
	})

	t.Run("long items are truncated at sentence boundary", func(t *testing.T) {
		long := strings.Repeat("A", 200) + ". " + strings.Repeat("B", 300)
		synthesis := "1. " + long + "\n" + wellFormedTable
		result := report.Aggregate(synthesis, testFallback())
		gt.Value(t, result.Risks[0].Summary).Equal(strings.Repeat("A", 200) + ".")
	})

	t.Run("decimal table cells are not treated as list items", func(t *testing.T) {
		result := report.Aggregate(wellFormedTable, testFallback())
		for _, risk := range result.Risks {
			gt.Value(t, risk.Summary).Equal("")
		}
	})

	t.Run("extra list items are ignored", func(t *testing.T) {
		synthesis := `1. One.
2. Two.
3. Three.
4. Four.
5. Five.
6. Six.
`
		result := report.Aggregate(synthesis, testFallback())
		gt.Array(t, result.Risks).Length(5)
		gt.Value(t, result.Risks[4].Summary).Equal("Five.")
	})
}

func TestAggregate_Invariant(t *testing.T) {
	// The consistency invariant holds across representative inputs: the
	// final score always equals the rounded mean of the per-category scores.
	inputs := []string{
		wellFormedTable,
		"no table here",
		"",
		"| Risk Name |\n| broken |\n",
		"1. Only a list.\n2. Nothing else.\n",
		"| Risk Name | Impact Score |\n| A | x |\n| B | y |\n| C | z |\n| D | 0.4 |\n| E | 1.0 |\n",
	}

	for _, synthesis := range inputs {
		result := report.Aggregate(synthesis, testFallback())
		gt.NoError(t, result.Validate())
	}
}

func TestAggregate_EmptyFallback(t *testing.T) {
	// A missing fallback entry behaves as score 0.0 rather than failing.
	result := report.Aggregate("nothing structured", map[types.RiskCategory]model.CategoryResult{})
	gt.NoError(t, result.Validate())
	gt.Value(t, result.FinalRiskScore).Equal(types.Score(0))
}
