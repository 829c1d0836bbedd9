package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"StockSentinel/internal/model"
)

// JSONFileRecorder writes each report to <Dir>/<SYMBOL>_analysis_report.json,
// replacing the previous one.
type JSONFileRecorder struct {
	Dir string
}

// NewJSONFileRecorder creates dir if needed.
func NewJSONFileRecorder(dir string) (*JSONFileRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &JSONFileRecorder{Dir: dir}, nil
}

// Path returns the file a symbol's report is written to.
func (j *JSONFileRecorder) Path(symbol string) string {
	name := strings.ToUpper(strings.NewReplacer("/", "_", "\\", "_").Replace(symbol))
	return filepath.Join(j.Dir, name+"_analysis_report.json")
}

func (j *JSONFileRecorder) RecordReport(r *model.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	// write then rename so readers never see a partial file
	path := j.Path(r.Symbol)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

// LatestReport reads the stored report. A missing file is ErrNotFound.
func (j *JSONFileRecorder) LatestReport(symbol string) (*model.Report, error) {
	data, err := os.ReadFile(j.Path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func (j *JSONFileRecorder) Close() error { return nil }
