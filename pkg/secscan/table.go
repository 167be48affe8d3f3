// Package secscan identifies installed endpoint-protection and EDR agents by
// matching running process names against a curated signature table.
package secscan

import (
	"sort"
	"strings"
)

type signature struct {
	process string
	product string
}

// builtin maps lower-cased process executable names (extension stripped) to
// vendor/product display names. Several process names may map to the same
// product; a name repeated later in the list redefines the earlier entry.
// Derived from industry lists of common endpoint security agents.
var builtin = []signature{
	// CrowdStrike
	{"csfalconservice", "CrowdStrike Falcon"},
	{"cbcomms", "CrowdStrike Falcon Insight XDR"},
	{"crowdstrike", "CrowdStrike Falcon"},
	// Carbon Black / VMware
	{"carbonsensor", "VMware Carbon Black EDR"},
	// unreachable as published: lookups see names with ".exe" already
	// stripped, so only a literal "cb" key could match. Kept verbatim from
	// the curated list rather than silently renamed.
	{"cb.exe", "Carbon Black EDR"},
	// SentinelOne
	{"cpx", "SentinelOne Singularity XDR"},
	// Cybereason
	{"cybereason", "Cybereason EDR"},
	// Tanium
	{"tanclient", "Tanium EDR"},
	// FireEye / Trellix
	{"xagt", "FireEye HX"},
	// Palo Alto
	{"trapsagent", "Palo Alto Networks Cortex XDR"},
	{"trapsd", "Palo Alto Networks Cortex XDR"},
	// Microsoft
	{"msmpeng", "Microsoft Defender"},
	{"msascuil", "Microsoft Defender"},
	{"windefend", "Microsoft Defender"},
	{"sysmon", "Microsoft Sysmon"},
	// Symantec
	{"ccsvchst", "Symantec Endpoint Protection"},
	{"rtvscan", "Symantec Endpoint Protection"},
	// McAfee
	{"edpa", "McAfee Endpoint Security"},
	{"shstat", "McAfee VirusScan"},
	{"mcshield", "McAfee VirusScan"},
	{"mfefire", "McAfee Host Intrusion Prevention"},
	{"dlpsensor", "McAfee DLP Sensor"},
	// Bitdefender
	{"bdagent", "Bitdefender"},
	{"vsserv", "Bitdefender"},
	// Sophos
	{"savservice", "Sophos Endpoint Security"},
	{"sophosav", "Sophos Endpoint Security"},
	{"sophossps", "Sophos Endpoint Security"},
	{"sophosui", "Sophos Endpoint Security"},
	// Panda Security
	{"pavfnsvr", "Panda Security"},
	{"pavsrv", "Panda Security"},
	{"psanhost", "Panda Security"},
	{"panda_url_filtering", "Panda Security"},
	// Check Point
	{"cpd", "Check Point Daemon"},
	{"fw", "Check Point Firewall"},
	// Fortinet
	{"fortiedr", "Fortinet FortiEDR"},
	// ESET
	{"egui", "ESET NOD32"},
	{"ekrn", "ESET NOD32"},
	// Kaspersky
	{"avp", "Kaspersky Anti-Virus"},
	// Avast / Avira
	{"avastsvc", "Avast"},
	{"avastui", "Avast"},
	{"avgnt", "Avira"},
	{"avguard", "Avira"},
	// Malwarebytes
	{"mbamservice", "Malwarebytes"},
	{"mbamtray", "Malwarebytes"},
	// FireEye endpoint agent
	{"firesvc", "FireEye Endpoint Agent"},
	{"firetray", "FireEye Endpoint Agent"},
	// Others
	{"dlpagent", "Symantec DLP Agent"},
	{"wrsa", "Webroot SecureAnywhere"},
	{"truecrypt", "TrueCrypt (encryption tool)"},
}

// Table is a read-only process-name-to-product mapping. Inserting a key that
// already exists is allowed; the last write wins.
type Table struct {
	byProcess map[string]string
}

// NewTable builds the built-in signature table.
func NewTable() *Table {
	t := &Table{byProcess: make(map[string]string, len(builtin))}
	for _, s := range builtin {
		t.Add(s.process, s.product)
	}
	return t
}

// Add registers one signature. The process name is lower-cased; empty keys
// and values are ignored.
func (t *Table) Add(process, product string) {
	process = strings.ToLower(strings.TrimSpace(process))
	if process == "" || product == "" {
		return
	}
	t.byProcess[process] = product
}

// Merge adds every entry of sigs over the existing table.
func (t *Table) Merge(sigs map[string]string) {
	for process, product := range sigs {
		t.Add(process, product)
	}
}

// Lookup returns the product for an already-normalized process name.
func (t *Table) Lookup(process string) (string, bool) {
	product, ok := t.byProcess[process]
	return product, ok
}

// Len reports the number of distinct process names in the table.
func (t *Table) Len() int {
	return len(t.byProcess)
}

// Classify matches normalized process names against the table and returns
// the detected product names, deduplicated and sorted. Names that match no
// signature are ignored. The result is never nil.
func (t *Table) Classify(processes []string) []string {
	seen := make(map[string]bool)
	for _, proc := range processes {
		if product, ok := t.byProcess[proc]; ok {
			seen[product] = true
		}
	}

	detected := make([]string, 0, len(seen))
	for product := range seen {
		detected = append(detected, product)
	}
	sort.Strings(detected)
	return detected
}
