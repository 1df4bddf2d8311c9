package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ReportID represents a unique identifier for an analysis report
type ReportID string

// NewReportID generates a new time-ordered report ID
func NewReportID() ReportID {
	return ReportID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the ReportID is valid
func (r ReportID) Validate() error {
	if r == "" {
		return goerr.New("report ID cannot be empty")
	}
	if _, err := uuid.Parse(string(r)); err != nil {
		return goerr.Wrap(err, "report ID must be a UUID", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of ReportID
func (r ReportID) String() string {
	return string(r)
}

// RunStatus represents the lifecycle state of an analysis run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// IsValid checks if the run status is valid
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the run status
func (s RunStatus) String() string {
	return string(s)
}

// ParseRunStatus parses a string into a RunStatus
func ParseRunStatus(s string) (RunStatus, error) {
	status := RunStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid run status: %s", s)
	}
	return status, nil
}
