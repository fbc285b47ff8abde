// Package report turns oracle verdicts into human-readable terminal output
// and machine-readable SARIF.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/community-of-python/redos-linter/oracle"
)

// attackStringLimit caps how many characters of an attack string are printed
// before truncation.
const attackStringLimit = 100

// Options is the read-once output configuration for a run. Colors are used
// only when stdout is interactive and no disable override is set.
type Options struct {
	Interactive   bool
	ColorDisabled bool
}

// Summary is derived from one render pass; it is never persisted.
type Summary struct {
	TotalAnalyzed   int
	VulnerableCount int
}

// Renderer writes the scan report. Output is a pure function of the verdicts
// and the options captured at construction, so identical inputs always
// produce identical bytes.
type Renderer struct {
	out      io.Writer
	header   *color.Color
	location *color.Color
	safe     *color.Color
}

// NewRenderer builds a renderer writing to out.
func NewRenderer(out io.Writer, opts Options) *Renderer {
	header := color.New(color.FgRed, color.Bold)
	location := color.New(color.FgCyan)
	safe := color.New(color.FgGreen)

	// Set the choice per color so the package-global TTY guess never leaks
	// into the output decision.
	if opts.Interactive && !opts.ColorDisabled {
		header.EnableColor()
		location.EnableColor()
		safe.EnableColor()
	} else {
		header.DisableColor()
		location.DisableColor()
		safe.DisableColor()
	}

	return &Renderer{
		out:      out,
		header:   header,
		location: location,
		safe:     safe,
	}
}

// Render writes one block per vulnerable verdict followed by the summary.
// Verdicts arrive and are printed in extraction order.
func (r *Renderer) Render(verdicts []oracle.Verdict) Summary {
	if len(verdicts) == 0 {
		fmt.Fprintln(r.out, "No patterns found.")
		return Summary{}
	}

	vulnerable := 0
	for _, verdict := range verdicts {
		if verdict.Status != oracle.StatusVulnerable {
			continue
		}
		vulnerable++
		r.renderVulnerable(verdict)
	}

	summary := Summary{TotalAnalyzed: len(verdicts), VulnerableCount: vulnerable}
	r.renderSummary(summary)
	return summary
}

func (r *Renderer) renderVulnerable(v oracle.Verdict) {
	fmt.Fprintf(r.out, "%s %s\n",
		r.header.Sprint("VULNERABLE"),
		r.location.Sprintf("%s:%d:%d", v.FilePath, v.Line, v.Col))
	fmt.Fprintf(r.out, "  Pattern: %s\n", v.Regex)
	fmt.Fprintln(r.out, "  Reason: exponential backtracking due to nested quantifiers")

	if v.Attack != nil {
		fmt.Fprintf(r.out, "  Attack string: %s\n", formatAttackString(v.Attack.String))
		if len(v.Attack.Pumps) > 0 {
			fmt.Fprintf(r.out, "  Repeating %q %d times\n", v.Attack.Pumps[0].Pump, v.Attack.Base)
		}
	}

	for _, line := range v.SourceLines {
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderSummary(summary Summary) {
	if summary.VulnerableCount == 0 {
		fmt.Fprintln(r.out, r.safe.Sprintf("All %d patterns appear safe.", summary.TotalAnalyzed))
		return
	}

	noun := "patterns"
	if summary.VulnerableCount == 1 {
		noun = "pattern"
	}
	fmt.Fprintln(r.out, r.header.Sprintf("Found %d vulnerable %s out of %d total",
		summary.VulnerableCount, noun, summary.TotalAnalyzed))

	for _, line := range recommendations {
		fmt.Fprintln(r.out, line)
	}
}

// formatAttackString quotes an attack string for the terminal, escaping
// control characters and truncating past the display limit.
func formatAttackString(s string) string {
	runes := []rune(s)
	if len(runes) <= attackStringLimit {
		return strconv.Quote(s)
	}
	return strconv.Quote(string(runes[:attackStringLimit])) + "..."
}

// recommendations is the fixed remediation block shown whenever at least one
// vulnerable pattern was found.
var recommendations = []string{
	"",
	"Recommendations:",
	"  - Avoid nested quantifiers like (a+)+; flatten them to a single quantifier",
	"  - Rewrite overlapping alternations like (a|aa)+ so branches cannot match the same text",
	"  - Prefer specific character classes over broad repetition where possible",
	"  - Suppress a reviewed finding with a trailing  # redos-linter: ignore  comment",
}
