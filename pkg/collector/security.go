package collector

import (
	"context"
	"path"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/model"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/source"
)

// collectSecurity matches the running process set against the signature
// table. Exact lookups only; a process matching no signature is ignored.
func collectSecurity(ctx context.Context, src source.Source, kind platform.Kind, opts Options) model.SecurityFindings {
	names := processNames(ctx, src, kind, opts)
	return model.SecurityFindings{
		Detected:        opts.Signatures.Classify(names),
		DetectionMethod: model.DetectionMethodProcessScan,
	}
}

// processNames returns the running processes reduced to lower-cased base
// executable names: Windows names lose a trailing ".exe", POSIX names keep
// only the final path component.
func processNames(ctx context.Context, src source.Source, kind platform.Kind, opts Options) []string {
	var (
		out   string
		names []string
	)

	if kind == platform.Windows {
		// csv, no header: "Image Name","PID","Session Name","Session#","Mem Usage"
		out = src.Output(ctx, "tasklist", "/fo", "csv", "/nh")
		for _, line := range splitLines(out) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			first, _, _ := strings.Cut(line, ",")
			names = append(names, normalizeProcessName(kind, strings.Trim(first, `"`)))
		}
	} else {
		out = src.Output(ctx, "ps", "-eo", "comm")
		lines := splitLines(out)
		if len(lines) > 1 {
			for _, line := range lines[1:] { // first line is the COMMAND header
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				names = append(names, normalizeProcessName(kind, line))
			}
		}
	}

	if out == "" && opts.NativeFallbacks {
		names = nativeProcessNames(ctx, kind, opts.Logger)
	}
	return names
}

func normalizeProcessName(kind platform.Kind, raw string) string {
	name := strings.ToLower(raw)
	if kind == platform.Windows {
		return strings.TrimSuffix(name, ".exe")
	}
	return path.Base(name)
}

func nativeProcessNames(ctx context.Context, kind platform.Kind, logger *zap.Logger) []string {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}
	logger.Debug("process list read from native fallback", zap.Int("processes", len(procs)))

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		names = append(names, normalizeProcessName(kind, name))
	}
	return names
}
