// Package render turns a host report into an output format. Rendering is a
// boundary concern: the collectors never see it, and the JSON field layout
// comes entirely from the model package.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mkarolak/hostprobe/pkg/model"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

type Renderer interface {
	Render(w io.Writer, report model.HostReport) error
}

func New(f Format) Renderer {
	switch f {
	case FormatTable:
		return &tableRenderer{}
	default:
		return &jsonRenderer{}
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Render(w io.Writer, report model.HostReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

type tableRenderer struct{}

func (r *tableRenderer) Render(w io.Writer, report model.HostReport) error {
	bc := report.BasicConfig

	fmt.Fprintf(w, "Host report collected at %s\n\n", report.CollectedAt)
	fmt.Fprintf(w, "Hostname:     %s\n", bc.Hostname)
	fmt.Fprintf(w, "Domain:       %s\n", orUnknown(bc.Domain))
	fmt.Fprintf(w, "Current user: %s\n", bc.CurrentUser)
	fmt.Fprintf(w, "OS:           %s %s (%s)\n", bc.OS.System, bc.OS.Release, bc.OS.Architecture)
	fmt.Fprintf(w, "Local users:  %d\n", len(bc.Users))

	fmt.Fprintf(w, "\nNetwork interfaces:\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tMAC\tIPV4\tIPV6\n")
	for _, iface := range report.Network {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			iface.Name,
			orUnknown(iface.MAC),
			strings.Join(iface.IPv4, ","),
			strings.Join(iface.IPv6, ","),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	hw := report.Hardware
	fmt.Fprintf(w, "\nHardware:\n")
	fmt.Fprintf(w, "  Manufacturer: %s\n", orUnknown(hw.Manufacturer))
	fmt.Fprintf(w, "  Model:        %s\n", orUnknown(hw.Model))
	fmt.Fprintf(w, "  CPU:          %s\n", orUnknown(hw.CPU))
	fmt.Fprintf(w, "  Memory:       total %s, free %s\n",
		byteCount(hw.MemoryTotalBytes), byteCount(hw.MemoryFreeBytes))

	fmt.Fprintf(w, "\nDisk volumes:\n")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tFILESYSTEM\tTOTAL\tUSED\tFREE\n")
	for _, vol := range hw.Disks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			vol.Name,
			orUnknown(vol.Filesystem),
			byteCount(vol.Total),
			byteCount(vol.Used),
			byteCount(vol.Free),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSecurity tools (%s):\n", report.SecurityTools.DetectionMethod)
	if len(report.SecurityTools.Detected) == 0 {
		fmt.Fprintf(w, "  none detected\n")
	}
	for _, name := range report.SecurityTools.Detected {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	return nil
}

func orUnknown(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func byteCount(v *uint64) string {
	if v == nil {
		return "-"
	}

	const unit = 1024
	if *v < unit {
		return fmt.Sprintf("%d B", *v)
	}
	div, exp := uint64(unit), 0
	for n := *v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(*v)/float64(div), "KMGTPE"[exp])
}
