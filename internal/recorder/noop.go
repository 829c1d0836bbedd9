package recorder

import "StockSentinel/internal/model"

// NoopRecorder is a no-op implementation used when persistence is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ *model.Report) error { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
