package model

import (
	"time"

	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

// Target identifies the company under analysis
type Target struct {
	Company string `json:"company"`
	Ticker  string `json:"ticker"`
}

// Report represents one analysis run and its (eventual) result.
// Result is nil while the run is in progress or after a failure.
type Report struct {
	ID        types.ReportID   `json:"id"`
	Target    Target           `json:"target"`
	Status    types.RunStatus  `json:"status"`
	Result    *AggregateResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewReport creates a report in the running state for the given target.
func NewReport(target Target) *Report {
	now := time.Now().UTC()
	return &Report{
		ID:        types.NewReportID(),
		Target:    target,
		Status:    types.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete returns a copy of the report marked completed with the given result.
func (r *Report) Complete(result *AggregateResult) *Report {
	updated := *r
	updated.Status = types.RunStatusCompleted
	updated.Result = result
	updated.Error = ""
	updated.UpdatedAt = time.Now().UTC()
	return &updated
}

// Fail returns a copy of the report marked failed with the given message.
func (r *Report) Fail(message string) *Report {
	updated := *r
	updated.Status = types.RunStatusFailed
	updated.Error = message
	updated.UpdatedAt = time.Now().UTC()
	return &updated
}
