package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHostReportJSONContract(t *testing.T) {
	report := HostReport{
		CollectedAt: "2024-03-01T10:30:00Z",
		BasicConfig: BasicConfig{
			Hostname:    "web-01",
			CurrentUser: "alice",
			Users:       []string{"root", "alice"},
		},
		Network: []NetworkInterface{
			{Name: "eth0", MAC: Ptr("aa:bb:cc:dd:ee:ff"), IPv4: []string{"192.168.1.5"}},
			{Name: "lo", IPv4: []string{"127.0.0.1"}},
		},
		SecurityTools: SecurityFindings{
			Detected:        []string{},
			DetectionMethod: DetectionMethodProcessScan,
		},
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}

	for _, key := range []string{"collected_at", "basic_config", "network", "hardware", "security_tools"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("top-level key %q missing from report JSON", key)
		}
	}
}

func TestHostReportOptionalFields(t *testing.T) {
	report := HostReport{
		BasicConfig: BasicConfig{Hostname: "web-01"},
		Network: []NetworkInterface{
			{Name: "lo", IPv4: []string{"127.0.0.1"}},
		},
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, `"domain":null`) {
		t.Errorf("nil domain must serialize as an explicit null, got: %s", out)
	}
	if strings.Contains(out, `"mac"`) {
		t.Errorf("nil MAC must be omitted entirely, got: %s", out)
	}
	if !strings.Contains(out, `"manufacturer":null`) {
		t.Errorf("unknown hardware fields must serialize as null, got: %s", out)
	}
}

func TestHostReportRoundTrip(t *testing.T) {
	original := HostReport{
		CollectedAt: "2024-03-01T10:30:00Z",
		BasicConfig: BasicConfig{
			Hostname: "web-01",
			Domain:   Ptr("corp.example.com"),
			Users:    []string{"root"},
		},
		Hardware: HardwareInfo{
			MemoryTotalBytes: Ptr(uint64(8254390272)),
			Disks: []DiskVolume{
				{Name: "/", Filesystem: Ptr("/dev/sda2"), Total: Ptr(uint64(100)), Free: Ptr(uint64(60)), Used: Ptr(uint64(40))},
			},
		},
		SecurityTools: SecurityFindings{
			Detected:        []string{"Microsoft Defender"},
			DetectionMethod: DetectionMethodProcessScan,
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	var decoded HostReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}

	if decoded.BasicConfig.Domain == nil || *decoded.BasicConfig.Domain != "corp.example.com" {
		t.Errorf("domain did not survive the round trip: %+v", decoded.BasicConfig.Domain)
	}
	if len(decoded.Hardware.Disks) != 1 || decoded.Hardware.Disks[0].Name != "/" {
		t.Errorf("disks did not survive the round trip: %+v", decoded.Hardware.Disks)
	}
	if got := decoded.SecurityTools.DetectionMethod; got != DetectionMethodProcessScan {
		t.Errorf("detection method = %q, want %q", got, DetectionMethodProcessScan)
	}
}
