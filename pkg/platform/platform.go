// Package platform determines which operating system family the probe is
// running on. The result is computed once and passed explicitly into every
// collector; nothing else in the codebase is allowed to branch on the OS.
package platform

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Kind is the operating system family of the host.
type Kind int

const (
	Windows Kind = iota
	Linux
	Darwin
	// OtherPOSIX covers everything we cannot identify precisely. The
	// Linux/BSD parsing strategies are applied as a best-effort fallback.
	OtherPOSIX
)

func (k Kind) String() string {
	switch k {
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	case Darwin:
		return "Darwin"
	default:
		return "OtherPOSIX"
	}
}

// Detect classifies the ambient operating environment. It cannot fail;
// unknown systems are reported as OtherPOSIX.
func Detect() Kind {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	default:
		return OtherPOSIX
	}
}

// Description holds the OS descriptor fields of the report. Fields that
// cannot be determined are left empty.
type Description struct {
	System       string
	Release      string
	Version      string
	Architecture string
}

// Describe returns the OS descriptor for the current host. POSIX systems are
// described via uname; Windows (and any uname failure) via gopsutil.
func Describe() Description {
	return describe()
}

func systemName(k Kind) string {
	if k == OtherPOSIX {
		return runtime.GOOS
	}
	return k.String()
}

func fallbackDescription(system string) Description {
	d := Description{System: system, Architecture: runtime.GOARCH}
	if info, err := host.Info(); err == nil {
		d.Release = info.PlatformVersion
		d.Version = info.KernelVersion
		if info.KernelArch != "" {
			d.Architecture = info.KernelArch
		}
	}
	return d
}
