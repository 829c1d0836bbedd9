package recorder

import (
	"errors"

	"StockSentinel/internal/model"
)

// ErrNotFound is returned when no stored report exists for a symbol.
var ErrNotFound = errors.New("report not found")

// Recorder persists finished reports.
type Recorder interface {
	RecordReport(r *model.Report) error
	Close() error
}

// Store reads back the most recent report for a display symbol.
type Store interface {
	LatestReport(symbol string) (*model.Report, error)
}

// MultiRecorder fans a report out to several recorders. Every recorder is
// attempted; the errors are joined.
type MultiRecorder []Recorder

func (m MultiRecorder) RecordReport(r *model.Report) error {
	var errs []error
	for _, rec := range m {
		if err := rec.RecordReport(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiRecorder) Close() error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
