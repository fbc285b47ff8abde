package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-of-python/redos-linter/oracle"
)

func TestWriteSARIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sarif")

	err := WriteSARIF(path, []oracle.Verdict{
		vulnerableVerdict("aaaa"),
		safeVerdict("^[a-z]+$"),
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "redos-linter", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "redos/catastrophic-backtracking", run.Tool.Driver.Rules[0].ID)

	// Safe verdicts produce no results.
	require.Len(t, run.Results, 1)
	result := run.Results[0]
	assert.Equal(t, "redos/catastrophic-backtracking", result.RuleID)
	assert.Equal(t, "error", result.Level)
	assert.Contains(t, result.Message.Text, "(a+)+")

	require.Len(t, result.Locations, 1)
	loc := result.Locations[0].PhysicalLocation
	assert.Equal(t, "app.py", loc.ArtifactLocation.URI)
	assert.Equal(t, 4, loc.Region.StartLine)
	assert.Equal(t, 19, loc.Region.StartColumn)
}
