package report

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/community-of-python/redos-linter/oracle"
)

const (
	sarifRuleID   = "redos/catastrophic-backtracking"
	sarifToolName = "redos-linter"
	sarifInfoURI  = "https://github.com/community-of-python/redos-linter"
)

// WriteSARIF writes a SARIF 2.1.0 report with one result per vulnerable
// verdict, suitable for code-scanning upload.
func WriteSARIF(path string, verdicts []oracle.Verdict) error {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifInfoURI)
	rule := run.AddRule(sarifRuleID).
		WithDescription("Regular expression vulnerable to catastrophic backtracking (ReDoS)").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})

	for _, verdict := range verdicts {
		if verdict.Status != oracle.StatusVulnerable {
			continue
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(verdict.FilePath)).
				WithRegion(sarif.NewRegion().
					WithStartLine(verdict.Line).
					WithStartColumn(verdict.Col + 1)),
		)

		message := fmt.Sprintf("Pattern %q can exhibit exponential backtracking", verdict.Regex)
		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel("error").
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	reportSarif.AddRun(run)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	defer file.Close()

	if err := reportSarif.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}
