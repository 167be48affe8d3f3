package collector

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/model"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/source"
)

const (
	dmiVendorPath  = "/sys/class/dmi/id/sys_vendor"
	dmiProductPath = "/sys/class/dmi/id/product_name"
	cpuinfoPath    = "/proc/cpuinfo"
	meminfoPath    = "/proc/meminfo"
)

func collectHardware(ctx context.Context, src source.Source, kind platform.Kind, opts Options) model.HardwareInfo {
	hw := model.HardwareInfo{}

	hw.Manufacturer, hw.Model = vendorModel(ctx, src, kind)
	hw.CPU = cpuDescription(ctx, src, kind)
	hw.MemoryTotalBytes, hw.MemoryFreeBytes = memoryInfo(ctx, src, kind, opts)

	// sanity check only: free above total means one source lied, so free is
	// dropped rather than corrected
	if hw.MemoryTotalBytes != nil && hw.MemoryFreeBytes != nil &&
		*hw.MemoryFreeBytes > *hw.MemoryTotalBytes {
		hw.MemoryFreeBytes = nil
	}

	hw.Disks = diskVolumes(ctx, src, kind, opts)
	return hw
}

func vendorModel(ctx context.Context, src source.Source, kind platform.Kind) (manufacturer, mdl *string) {
	switch kind {
	case platform.Windows:
		out := src.Output(ctx, "wmic", "computersystem", "get", "manufacturer,model", "/Value")
		for _, line := range splitLines(out) {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)
			if v, ok := cutPrefixFold(line, lower, "manufacturer="); ok && v != "" {
				manufacturer = model.Ptr(v)
			} else if v, ok := cutPrefixFold(line, lower, "model="); ok && v != "" {
				mdl = model.Ptr(v)
			}
		}
	case platform.Darwin:
		out := src.Output(ctx, "system_profiler", "SPHardwareDataType")
		for _, line := range splitLines(out) {
			switch {
			case strings.Contains(line, "Model Name:"):
				mdl = labelValue(line)
			case strings.Contains(line, "Model Identifier:") && mdl == nil:
				mdl = labelValue(line)
			case strings.Contains(line, "Manufacturer:"):
				manufacturer = labelValue(line)
			}
		}
	default:
		// Linux and other POSIX: firmware descriptor files, each
		// independently optional
		if v := src.ReadFile(dmiVendorPath); v != "" {
			manufacturer = model.Ptr(v)
		}
		if v := src.ReadFile(dmiProductPath); v != "" {
			mdl = model.Ptr(v)
		}
	}
	return manufacturer, mdl
}

func labelValue(line string) *string {
	_, val, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	return model.Ptr(strings.TrimSpace(val))
}

func cpuDescription(ctx context.Context, src source.Source, kind platform.Kind) *string {
	switch kind {
	case platform.Windows:
		out := src.Output(ctx, "wmic", "cpu", "get", "Name", "/Value")
		for _, line := range splitLines(out) {
			line = strings.TrimSpace(line)
			if name, ok := strings.CutPrefix(line, "Name="); ok && name != "" {
				return model.Ptr(strings.TrimSpace(name))
			}
		}
		return nil
	case platform.Darwin:
		if out := src.Output(ctx, "sysctl", "-n", "machdep.cpu.brand_string"); out != "" {
			return model.Ptr(out)
		}
		return nil
	default:
		// live kernel descriptor first, lscpu as fallback
		for _, line := range splitLines(src.ReadFile(cpuinfoPath)) {
			if strings.HasPrefix(strings.ToLower(line), "model name") {
				return labelValue(line)
			}
		}
		for _, line := range splitLines(src.Output(ctx, "lscpu")) {
			if strings.Contains(strings.ToLower(line), "model name") {
				return labelValue(line)
			}
		}
		return nil
	}
}

var (
	pageSizePattern  = regexp.MustCompile(`page size of (\d+) bytes`)
	pagesFreePattern = regexp.MustCompile(`^Pages free:\s+(\d+)`)
	digitsOnly       = regexp.MustCompile(`^\d+$`)
)

func memoryInfo(ctx context.Context, src source.Source, kind platform.Kind, opts Options) (total, free *uint64) {
	switch kind {
	case platform.Windows:
		out := src.Output(ctx, "wmic", "OS", "get", "FreePhysicalMemory,TotalVisibleMemorySize", "/Value")
		for _, line := range splitLines(out) {
			key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
			if !ok {
				continue
			}
			// wmic reports kibibytes
			switch key {
			case "FreePhysicalMemory":
				if kb := parseUint(val); kb != nil {
					free = model.Ptr(*kb * 1024)
				}
			case "TotalVisibleMemorySize":
				if kb := parseUint(val); kb != nil {
					total = model.Ptr(*kb * 1024)
				}
			}
		}

	case platform.Darwin:
		if out := src.Output(ctx, "sysctl", "-n", "hw.memsize"); digitsOnly.MatchString(out) {
			total = parseUint(out)
		}
		if vmOut := src.Output(ctx, "vm_stat"); vmOut != "" {
			pageSize := uint64(4096)
			if m := pageSizePattern.FindStringSubmatch(vmOut); m != nil {
				if ps := parseUint(m[1]); ps != nil {
					pageSize = *ps
				}
			}
			for _, line := range splitLines(vmOut) {
				if m := pagesFreePattern.FindStringSubmatch(line); m != nil {
					if pages := parseUint(m[1]); pages != nil && *pages > 0 {
						free = model.Ptr(*pages * pageSize)
					}
					break
				}
			}
		}

	default:
		// `free -b` reports bytes; /proc/meminfo is consulted only when the
		// command produced no output at all
		out := src.Output(ctx, "free", "-b")
		if out != "" {
			for _, line := range splitLines(out) {
				if !strings.HasPrefix(line, "Mem:") {
					continue
				}
				// Mem: total used free shared buff/cache available
				fields := strings.Fields(line)
				if len(fields) >= 4 {
					total = parseUint(fields[1])
					free = parseUint(fields[3])
				}
				break
			}
		} else {
			for _, line := range splitLines(src.ReadFile(meminfoPath)) {
				fields := strings.Fields(line)
				if len(fields) < 2 {
					continue
				}
				switch fields[0] {
				case "MemTotal:":
					if kb := parseUint(fields[1]); kb != nil {
						total = model.Ptr(*kb * 1024)
					}
				case "MemFree:":
					if kb := parseUint(fields[1]); kb != nil {
						free = model.Ptr(*kb * 1024)
					}
				}
				if total != nil && free != nil {
					break
				}
			}
		}
	}

	if total == nil && free == nil && opts.NativeFallbacks {
		if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			opts.Logger.Debug("memory read from native fallback")
			total = model.Ptr(vm.Total)
			free = model.Ptr(vm.Free)
		}
	}
	return total, free
}

func diskVolumes(ctx context.Context, src source.Source, kind platform.Kind, opts Options) []model.DiskVolume {
	var (
		volumes = make([]model.DiskVolume, 0)
		out     string
	)

	if kind == platform.Windows {
		out = src.Output(ctx, "wmic", "logicaldisk", "get", "Caption,FileSystem,FreeSpace,Size", "/Format:csv")
		volumes = append(volumes, parseLogicalDiskCSV(out)...)
	} else {
		// -P pins the POSIX column layout, -B1 requests byte units
		out = src.Output(ctx, "df", "-P", "-B1")
		volumes = append(volumes, parseDF(out)...)
	}

	if out == "" && opts.NativeFallbacks {
		volumes = append(volumes, nativeVolumes(ctx, opts.Logger)...)
	}
	return volumes
}

// parseLogicalDiskCSV parses `wmic logicaldisk ... /Format:csv` output. The
// header row starts with the literal "Node"; fields are
// Node,Caption,FileSystem,FreeSpace,Size. Used space is derived only when
// both size and free parse as integers.
func parseLogicalDiskCSV(out string) []model.DiskVolume {
	volumes := make([]model.DiskVolume, 0)
	for _, line := range splitLines(out) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Node") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 5 {
			continue
		}

		vol := model.DiskVolume{Name: parts[1]}
		if parts[2] != "" {
			vol.Filesystem = model.Ptr(parts[2])
		}
		vol.Free = parseUint(parts[3])
		vol.Total = parseUint(parts[4])
		if vol.Total != nil && vol.Free != nil && *vol.Total >= *vol.Free {
			vol.Used = model.Ptr(*vol.Total - *vol.Free)
		}
		volumes = append(volumes, vol)
	}
	return volumes
}

// parseDF parses `df -P -B1` output. The first row is the header; a row with
// fewer than 6 whitespace-separated fields is discarded whole rather than
// recorded partially. Columns: filesystem, total, used, free, capacity%
// (skipped), mount point.
func parseDF(out string) []model.DiskVolume {
	volumes := make([]model.DiskVolume, 0)
	lines := splitLines(out)
	if len(lines) < 2 {
		return volumes
	}

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		volumes = append(volumes, model.DiskVolume{
			Name:       fields[5],
			Filesystem: model.Ptr(fields[0]),
			Total:      parseUint(fields[1]),
			Used:       parseUint(fields[2]),
			Free:       parseUint(fields[3]),
		})
	}
	return volumes
}

func nativeVolumes(ctx context.Context, logger *zap.Logger) []model.DiskVolume {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil
	}
	logger.Debug("disk volumes read from native fallback", zap.Int("partitions", len(parts)))

	volumes := make([]model.DiskVolume, 0, len(parts))
	for _, p := range parts {
		vol := model.DiskVolume{Name: p.Mountpoint}
		if p.Fstype != "" {
			vol.Filesystem = model.Ptr(p.Fstype)
		}
		if usage, err := disk.UsageWithContext(ctx, p.Mountpoint); err == nil {
			vol.Total = model.Ptr(usage.Total)
			vol.Free = model.Ptr(usage.Free)
			vol.Used = model.Ptr(usage.Used)
		}
		volumes = append(volumes, vol)
	}
	return volumes
}

// parseUint parses a decimal byte/kibibyte count; nil on any failure, so an
// unparseable field reads as unknown rather than zero.
func parseUint(s string) *uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// cutPrefixFold strips prefix from line using the pre-lowered form for the
// match, preserving the original casing of the value.
func cutPrefixFold(line, lower, prefix string) (string, bool) {
	if !strings.HasPrefix(lower, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}
