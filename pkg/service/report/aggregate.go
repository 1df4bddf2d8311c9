package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

var (
	// A markdown table whose header line starts with '|' and contains
	// "Risk Name", followed by consecutive '|'-prefixed rows. A blank line
	// terminates the table.
	tablePattern = regexp.MustCompile(`(?m)^\|\s*Risk Name[^\n]*\n((?:\|[^\n]*\n?)+)`)

	// Numbered list items anchored at line start. Anchoring matters:
	// decimal score cells such as "0.8" inside table rows must not be
	// consumed as list items.
	listItemPattern = regexp.MustCompile(`(?m)^\d+\.\s*(.*)$`)
)

// Aggregate resolves the synthesis text and the per-category fallback
// results into one complete AggregateResult.
//
// Scores come from the synthesis table, matched to categories by row
// position rather than by label text. A row whose score cell does not
// parse, a malformed row, a short table, and a missing table all fall back
// to the supplied per-category result for that position. Summaries come
// from the numbered list, assigned positionally and truncated; categories
// without a list item get an empty summary. The final risk score is the
// mean of the resolved scores. The result always covers every category in
// enumeration order, no matter how malformed the input is.
func Aggregate(synthesis string, fallback map[types.RiskCategory]model.CategoryResult) *model.AggregateResult {
	categories := types.Categories()

	scores := make([]types.Score, len(categories))
	resolved := make([]bool, len(categories))

	if m := tablePattern.FindStringSubmatch(synthesis); m != nil {
		rows := strings.Split(strings.TrimRight(m[1], "\n"), "\n")
		for idx, row := range rows {
			if idx >= len(categories) {
				break
			}
			cells := splitRow(row)
			if len(cells) != 2 {
				// Malformed row: this position falls through to the
				// fallback below.
				continue
			}
			if v, err := strconv.ParseFloat(cells[1], 64); err == nil {
				scores[idx] = types.Score(v)
			} else {
				scores[idx] = fallback[categories[idx]].ImpactScore
			}
			resolved[idx] = true
		}
	}

	for i, category := range categories {
		if !resolved[i] {
			scores[i] = fallback[category].ImpactScore
		}
		scores[i] = scores[i].Round2()
	}

	summaries := make([]string, len(categories))
	for i, m := range listItemPattern.FindAllStringSubmatch(synthesis, len(categories)) {
		summaries[i] = Truncate(strings.TrimSpace(m[1]), DefaultMaxSummaryChars)
	}

	risks := make([]model.CategoryResult, len(categories))
	var sum types.Score
	for i, category := range categories {
		risks[i] = model.NewCategoryResult(category, summaries[i], scores[i])
		sum += scores[i]
	}

	return &model.AggregateResult{
		Risks:          risks,
		FinalRiskScore: (sum / types.Score(len(categories))).Round2(),
	}
}

// splitRow splits a table row on '|', trims each cell, and drops the empty
// cells produced by leading and trailing delimiters.
func splitRow(row string) []string {
	var cells []string
	for _, cell := range strings.Split(row, "|") {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			cells = append(cells, trimmed)
		}
	}
	return cells
}
