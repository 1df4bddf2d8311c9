package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.ReportID]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.ReportID]*model.Report),
	}
}

// clone copies a report so callers cannot modify the stored value
func clone(report *model.Report) *model.Report {
	copied := *report
	if report.Result != nil {
		result := *report.Result
		result.Risks = append([]model.CategoryResult(nil), report.Result.Risks...)
		copied.Result = &result
	}
	return &copied
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; exists {
		return goerr.New("report already exists", goerr.V("id", report.ID))
	}

	r.reports[report.ID] = clone(report)
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[id]
	if !exists {
		return nil, nil
	}

	return clone(report), nil
}

func (r *reportRepository) List(ctx context.Context) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*model.Report, 0, len(r.reports))
	for _, report := range r.reports {
		reports = append(reports, clone(report))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; !exists {
		return goerr.New("report not found", goerr.V("id", report.ID))
	}

	r.reports[report.ID] = clone(report)
	return nil
}
