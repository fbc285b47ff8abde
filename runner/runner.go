// Package runner wires the pipeline together: collect files, extract
// patterns, drop suppressed ones, consult the oracle, render the verdicts.
package runner

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/community-of-python/redos-linter/collector"
	"github.com/community-of-python/redos-linter/extractor"
	"github.com/community-of-python/redos-linter/oracle"
	"github.com/community-of-python/redos-linter/report"
)

// Runner executes one full scan pass. Every stage preserves input order, so
// verdicts come out in file-collection order and the report is reproducible.
type Runner struct {
	extractor *extractor.Extractor
	oracle    oracle.Client
	renderer  *report.Renderer
	logger    hclog.Logger
	sarifPath string
}

// New builds a runner. sarifPath may be empty to skip SARIF export.
func New(ext *extractor.Extractor, client oracle.Client, renderer *report.Renderer, logger hclog.Logger, sarifPath string) *Runner {
	return &Runner{
		extractor: ext,
		oracle:    client,
		renderer:  renderer,
		logger:    logger,
		sarifPath: sarifPath,
	}
}

// Run scans the given paths to completion. Missing explicit inputs and files
// that fail to parse are reported as warnings and skipped; the scan itself
// fails only when the oracle does.
func (r *Runner) Run(ctx context.Context, paths []string) (report.Summary, error) {
	files, err := collector.Collect(paths)
	if err != nil {
		var notFound *collector.PathNotFoundError
		if !errors.As(err, &notFound) {
			return report.Summary{}, err
		}
		r.logger.Warn("some inputs could not be read", "error", err)
	}
	r.logger.Debug("collected source files", "count", len(files))

	var occurrences []extractor.Occurrence
	for _, file := range files {
		occs, err := r.extractor.Extract(file)
		if err != nil {
			var syntaxErr *extractor.SyntaxError
			if errors.As(err, &syntaxErr) {
				r.logger.Warn("skipping file with invalid syntax", "file", file)
			} else {
				r.logger.Warn("skipping unreadable file", "file", file, "error", err)
			}
			continue
		}
		occurrences = append(occurrences, occs...)
	}

	batch := buildBatch(occurrences)
	if len(batch) == 0 {
		return r.renderer.Render(nil), nil
	}

	verdicts, err := r.oracle.Analyze(ctx, batch)
	if err != nil {
		return report.Summary{}, err
	}

	summary := r.renderer.Render(verdicts)

	if r.sarifPath != "" {
		if err := report.WriteSARIF(r.sarifPath, verdicts); err != nil {
			return summary, err
		}
		r.logger.Info("wrote SARIF report", "path", r.sarifPath)
	}

	return summary, nil
}

// buildBatch converts non-suppressed occurrences into oracle requests,
// preserving extraction order.
func buildBatch(occurrences []extractor.Occurrence) []oracle.Request {
	var batch []oracle.Request
	for _, occ := range occurrences {
		if occ.Suppressed {
			continue
		}
		batch = append(batch, oracle.Request{
			Regex:       occ.Pattern,
			FilePath:    occ.FilePath,
			Line:        occ.Line,
			Col:         occ.Column,
			SourceLines: occ.ContextLines,
		})
	}
	return batch
}
