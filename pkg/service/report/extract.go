// Package report turns semi-structured agent output into structured results.
//
// Agent output is generated text and its format is not contractually
// guaranteed. Every function in this package degrades to a documented
// default on malformed input instead of returning an error: the pipeline
// must always produce a complete result.
package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

var (
	summaryPattern = regexp.MustCompile(`Summary:\s*(.*)`)
	scorePattern   = regexp.MustCompile(`Impact Score:\s*([01](?:\.\d+)?)`)
)

// Extract parses one per-category agent report into its summary and impact
// score. The summary is the remainder of the "Summary:" line; without the
// marker the whole trimmed text is used. The score comes from the
// "Impact Score: <0..1>" marker; a missing marker or unparsable number
// yields 0.0.
func Extract(raw string) (string, types.Score) {
	summary := strings.TrimSpace(raw)
	if m := summaryPattern.FindStringSubmatch(raw); m != nil {
		summary = strings.TrimSpace(m[1])
	}

	var score types.Score
	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = types.Score(v)
		}
	}

	return summary, score
}
