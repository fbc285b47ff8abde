// Package oracle is the synchronous port to the external ReDoS checker. The
// production implementation runs the recheck-based checker as a single
// subprocess per batch; any backend satisfying Client can stand in for it.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/community-of-python/redos-linter/config"
)

// Client analyzes a batch of patterns and returns one verdict per request,
// in request order.
type Client interface {
	Analyze(ctx context.Context, batch []Request) ([]Verdict, error)
}

// LaunchError reports that the checker executable could not be located.
// There is no way to produce verdicts without it, so this aborts the run.
type LaunchError struct {
	Exec string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not find the checker executable %q: %v", e.Exec, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Error reports a checker failure at analysis time: diagnostics on stderr or
// a response that does not parse. Detail carries the checker's own text.
type Error struct {
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("oracle error: %s", e.Detail)
}

// DenoClient invokes the checker under deno, once per batch. Batching keeps
// the fixed subprocess startup cost independent of file count.
type DenoClient struct {
	execPath    string
	checkerPath string
	bundlePath  string
	timeout     time.Duration
	logger      hclog.Logger
}

// NewDenoClient resolves the checker executable and returns a ready client.
// A missing executable yields a *LaunchError.
func NewDenoClient(cfg config.Oracle, logger hclog.Logger) (*DenoClient, error) {
	execPath, err := exec.LookPath(cfg.Exec)
	if err != nil {
		return nil, &LaunchError{Exec: cfg.Exec, Err: err}
	}

	return &DenoClient{
		execPath:    execPath,
		checkerPath: cfg.Checker,
		bundlePath:  cfg.Bundle,
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

// Analyze serializes the batch to the checker's stdin and decodes its stdout
// into verdicts. An empty batch returns immediately without a subprocess.
//
// Empty stdout with empty stderr is taken to mean "no vulnerabilities"; the
// checker's protocol does not distinguish that from a silent failure, so the
// case is logged as a warning rather than trusted quietly.
func (c *DenoClient) Analyze(ctx context.Context, batch []Request) ([]Verdict, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"run", "--allow-read", c.checkerPath}
	if c.bundlePath != "" {
		args = append(args, c.bundlePath)
	}

	cmd := exec.CommandContext(ctx, c.execPath, args...)
	// The pure backend disables platform-specific fast paths so verdicts are
	// reproducible across machines.
	cmd.Env = append(os.Environ(), "RECHECK_BACKEND=pure")
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if stderr.Len() > 0 {
		return nil, &Error{Detail: stderr.String()}
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("oracle did not finish within %s: %w", c.timeout, ctx.Err())
	}

	output := bytes.TrimSpace(stdout.Bytes())
	if len(output) == 0 {
		if runErr != nil {
			return nil, fmt.Errorf("failed to run oracle: %w", runErr)
		}
		c.logger.Warn("oracle produced no output; treating as no vulnerabilities found")
		return []Verdict{}, nil
	}

	var verdicts []Verdict
	if err := json.Unmarshal(output, &verdicts); err != nil {
		return nil, &Error{Detail: "invalid response"}
	}
	return verdicts, nil
}
