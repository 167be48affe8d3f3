// Package collector gathers host facts from platform commands and files and
// assembles them into one normalized report. Each collector is independent,
// read-only with respect to the others, and best-effort: a source that is
// missing or produces garbage costs only the affected fields.
package collector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/model"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/secscan"
	"github.com/mkarolak/hostprobe/pkg/source"
)

// Collect runs all collectors against src and returns the assembled report.
// It cannot fail: unavailable facts are reported as absent or empty. Running
// it twice against identical sources yields identical reports except for the
// collection timestamp.
func Collect(ctx context.Context, src source.Source, kind platform.Kind, opts Options) model.HostReport {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Signatures == nil {
		opts.Signatures = secscan.NewTable()
	}

	report := model.HostReport{
		CollectedAt: time.Now().UTC().Format(model.TimeFormat),
	}

	report.BasicConfig = collectIdentity(ctx, src, kind, opts)
	report.Network = collectNetwork(ctx, src, kind)
	report.Hardware = collectHardware(ctx, src, kind, opts)
	report.SecurityTools = collectSecurity(ctx, src, kind, opts)

	return report
}
