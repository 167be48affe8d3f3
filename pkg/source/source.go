// Package source is the boundary between the collectors and the host: every
// external command and file read goes through a Source. A Source never fails;
// any execution error, non-zero exit, missing binary or unreadable file
// collapses to an empty string, and the collectors treat emptiness as "this
// fact is unavailable here".
package source

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source supplies raw platform facts.
type Source interface {
	// Output runs a command and returns its trimmed standard output, or ""
	// on any failure. Standard error is discarded.
	Output(ctx context.Context, name string, args ...string) string
	// ReadFile returns the trimmed content of a file, or "" on any failure.
	ReadFile(path string) string
}

// DefaultTimeout bounds a single command invocation. The original tooling ran
// commands without a deadline; a hung process would stall a collector
// indefinitely, so a timeout is imposed and treated like any other failure.
const DefaultTimeout = 30 * time.Second

// ExecSource runs real commands on the local host.
type ExecSource struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewExec returns an ExecSource. A non-positive timeout falls back to
// DefaultTimeout; a nil logger disables logging.
func NewExec(timeout time.Duration, logger *zap.Logger) *ExecSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecSource{timeout: timeout, logger: logger}
}

func (s *ExecSource) Output(ctx context.Context, name string, args ...string) string {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		s.logger.Debug("command failed",
			zap.String("command", name),
			zap.Strings("args", args),
			zap.Error(err),
		)
		return ""
	}
	return strings.TrimSpace(stdout.String())
}

func (s *ExecSource) ReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("file read failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(string(data))
}
