package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/msgdiag/servicebus-sockopt-repro/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleResults() []scenario.Result {
	return []scenario.Result{
		{Name: "sync send/receive", Transport: "sync", Passed: true, Elapsed: 1200 * time.Millisecond},
		{Name: "async send/receive", Transport: "async", Passed: false, Error: "invalid argument"},
	}
}

func Test_GivenMixedResults_WhenReportFileExported_ThenReflectsFailure(t *testing.T) {
	// Given
	exporter := NewExporter(log.NewLogger())
	pth := filepath.Join(t.TempDir(), "report.json")

	// When
	err := exporter.ExportReportFile(pth, exampleResults())

	// Then
	require.NoError(t, err)

	content, err := os.ReadFile(pth)
	require.NoError(t, err)

	var parsed reportFile
	require.NoError(t, json.Unmarshal(content, &parsed))

	assert.False(t, parsed.Passed)
	require.Len(t, parsed.Scenarios, 2)
	assert.Equal(t, "sync send/receive", parsed.Scenarios[0].Name)
	assert.True(t, parsed.Scenarios[0].Passed)
	assert.Equal(t, "invalid argument", parsed.Scenarios[1].Error)
	assert.False(t, parsed.GeneratedAt.IsZero())
}

func Test_GivenAllPassing_WhenReportFileExported_ThenPassedTrue(t *testing.T) {
	exporter := NewExporter(log.NewLogger())
	pth := filepath.Join(t.TempDir(), "report.json")

	results := []scenario.Result{{Name: "sync send/receive", Transport: "sync", Passed: true}}
	require.NoError(t, exporter.ExportReportFile(pth, results))

	content, err := os.ReadFile(pth)
	require.NoError(t, err)

	var parsed reportFile
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.True(t, parsed.Passed)
}

func Test_GivenUnwritablePath_WhenReportFileExported_ThenError(t *testing.T) {
	exporter := NewExporter(log.NewLogger())

	err := exporter.ExportReportFile(filepath.Join(t.TempDir(), "missing", "report.json"), exampleResults())

	require.Error(t, err)
}
