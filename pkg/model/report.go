// Package model defines the normalized host report. The JSON field names and
// nesting are the output contract other tooling depends on; changing them is
// a breaking change.
package model

// TimeFormat is the fixed layout of the collection timestamp (UTC).
const TimeFormat = "2006-01-02T15:04:05Z"

// DetectionMethodProcessScan is the only detection method this engine
// implements.
const DetectionMethodProcessScan = "process_scan"

// HostReport is the single aggregate output of one collection run. It is
// constructed once, never mutated afterwards, and carries no state across
// runs.
type HostReport struct {
	CollectedAt   string             `json:"collected_at"`
	BasicConfig   BasicConfig        `json:"basic_config"`
	Network       []NetworkInterface `json:"network"`
	Hardware      HardwareInfo       `json:"hardware"`
	SecurityTools SecurityFindings   `json:"security_tools"`
}

// OSInfo describes the operating system of the host.
type OSInfo struct {
	System       string `json:"system"`
	Release      string `json:"release"`
	Version      string `json:"version"`
	Architecture string `json:"architecture"`
}

// BasicConfig holds host identity. A nil Domain means "not joined or could
// not be determined", which is distinct from an empty string.
type BasicConfig struct {
	Hostname    string   `json:"hostname"`
	Domain      *string  `json:"domain"`
	CurrentUser string   `json:"current_user"`
	OS          OSInfo   `json:"os"`
	Users       []string `json:"users"`
}

// NetworkInterface is one adapter with its addresses. Name is always present
// when anything else is; entries with no MAC and no addresses are dropped by
// the POSIX parsers before they reach the report.
type NetworkInterface struct {
	Name string   `json:"name"`
	MAC  *string  `json:"mac,omitempty"`
	IPv4 []string `json:"ipv4,omitempty"`
	IPv6 []string `json:"ipv6,omitempty"`
}

// HardwareInfo aggregates vendor, CPU, memory and volume facts. Every field
// is best-effort; nil means unknown, never zero.
type HardwareInfo struct {
	Manufacturer     *string      `json:"manufacturer"`
	Model            *string      `json:"model"`
	CPU              *string      `json:"cpu"`
	MemoryTotalBytes *uint64      `json:"memory_total_bytes"`
	MemoryFreeBytes  *uint64      `json:"memory_free_bytes"`
	Disks            []DiskVolume `json:"disks"`
}

// DiskVolume is one mounted volume or logical drive. Sizes are bytes; a
// field that failed to parse stays nil rather than becoming zero.
type DiskVolume struct {
	Name       string  `json:"name"`
	Filesystem *string `json:"filesystem"`
	Total      *uint64 `json:"total"`
	Free       *uint64 `json:"free"`
	Used       *uint64 `json:"used"`
}

// SecurityFindings lists detected endpoint-security products, deduplicated
// and sorted for determinism.
type SecurityFindings struct {
	Detected        []string `json:"detected"`
	DetectionMethod string   `json:"detection_method"`
}

// Ptr returns a pointer to v. Convenience for the optional report fields.
func Ptr[T any](v T) *T {
	return &v
}
