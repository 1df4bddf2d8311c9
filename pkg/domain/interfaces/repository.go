package interfaces

import (
	"context"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Report() ReportRepository
	Close() error
}

// ReportRepository persists analysis reports
type ReportRepository interface {
	// Create stores a new report
	Create(ctx context.Context, report *model.Report) error

	// Get retrieves a report by ID. Returns nil if not found.
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)

	// List retrieves all reports, newest first
	List(ctx context.Context) ([]*model.Report, error)

	// Update replaces an existing report
	Update(ctx context.Context, report *model.Report) error
}
