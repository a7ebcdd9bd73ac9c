package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/scenario"
)

// Exporter publishes the run outcome: human-readable summary lines on the
// console and, when requested, a machine-readable JSON file for CI
// artifacts.
type Exporter interface {
	ExportRunResult(results []scenario.Result)
	ExportReportFile(pth string, results []scenario.Result) error
}

type exporter struct {
	logger log.Logger
}

// NewExporter ...
func NewExporter(logger log.Logger) Exporter {
	return &exporter{logger: logger}
}

func (e *exporter) ExportRunResult(results []scenario.Result) {
	e.logger.Println()
	e.logger.Infof("Summary")
	for _, result := range results {
		if result.Passed {
			e.logger.Donef("* %s: PASS (%s)", result.Name, result.Elapsed.Round(time.Millisecond))
		} else {
			e.logger.Errorf("* %s: FAIL - %s", result.Name, result.Error)
		}
	}
}

type reportFile struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Passed      bool              `json:"passed"`
	Scenarios   []scenario.Result `json:"scenarios"`
}

func (e *exporter) ExportReportFile(pth string, results []scenario.Result) error {
	passed := true
	for _, result := range results {
		passed = passed && result.Passed
	}

	content, err := json.MarshalIndent(reportFile{
		GeneratedAt: time.Now().UTC(),
		Passed:      passed,
		Scenarios:   results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(pth, content, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", pth, err)
	}

	e.logger.Printf("Report written to %s", pth)
	return nil
}
