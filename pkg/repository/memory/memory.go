// Package memory provides an in-memory Repository implementation, used for
// tests and for running without a Firestore project.
package memory

import (
	"github.com/fintel-lab/pentarisk/pkg/domain/interfaces"
)

type Memory struct {
	report *reportRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		report: newReportRepository(),
	}
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Close() error {
	return nil
}
