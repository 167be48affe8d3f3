package collector

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/mkarolak/hostprobe/pkg/model"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/source"
)

// collectNetwork produces the uniform interface list. Each platform exposes
// adapters through a different human-oriented text format; the three parsers
// below normalize them into one schema. Empty command output yields an empty
// list, never an error.
func collectNetwork(ctx context.Context, src source.Source, kind platform.Kind) []model.NetworkInterface {
	switch kind {
	case platform.Windows:
		return parseIPConfig(src.Output(ctx, "ipconfig", "/all"))
	case platform.Linux:
		return parseIPAddr(src.Output(ctx, "ip", "-o", "addr", "show"))
	default:
		// Darwin and other POSIX variants: ifconfig is the portable fallback
		return parseIfconfig(src.Output(ctx, "ifconfig", "-a"))
	}
}

// parseIPConfig parses `ipconfig /all` output. An un-indented line ending in
// ':' starts a new adapter section; any other line is a key/value pair split
// on the first ':'. Real output separates each adapter header from its
// key/value block with a blank line, so blank lines are ignored: only the
// next header or end of input flushes the accumulator. A named adapter is
// kept even when no MAC or address was found for it, because the section
// header alone establishes intent to report it.
func parseIPConfig(out string) []model.NetworkInterface {
	ifaces := make([]model.NetworkInterface, 0)
	if out == "" {
		return ifaces
	}

	var cur *model.NetworkInterface
	flush := func() {
		if cur != nil {
			ifaces = append(ifaces, *cur)
			cur = nil
		}
	}

	for _, line := range splitLines(out) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !startsIndented(line) && strings.HasSuffix(trimmed, ":") {
			flush()
			cur = &model.NetworkInterface{Name: strings.TrimSuffix(trimmed, ":")}
			continue
		}
		if cur == nil {
			// key/value noise before the first adapter header; a MAC or
			// address without a name would be a phantom adapter
			continue
		}

		rawKey, rawVal, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// keys carry a dot leader ("IPv4 Address. . . . . . :")
		key := strings.ToLower(strings.Trim(rawKey, " \t."))
		val := strings.TrimSpace(rawVal)

		switch {
		case strings.Contains(key, "physical address"):
			if cur.MAC == nil && val != "" {
				cur.MAC = model.Ptr(val)
			}
		case key == "ipv4 address" || key == "ip address" || key == "autoconfiguration ipv4 address":
			cur.IPv4 = append(cur.IPv4, stripAnnotation(val))
		case strings.Contains(key, "ipv6 address"):
			cur.IPv6 = append(cur.IPv6, stripAnnotation(val))
		}
	}
	flush()

	return ifaces
}

// stripAnnotation removes a trailing parenthetical such as "(Preferred)"
// from an address value.
func stripAnnotation(val string) string {
	addr, _, _ := strings.Cut(val, "(")
	return strings.TrimSpace(addr)
}

func startsIndented(line string) bool {
	return line != "" && unicode.IsSpace(rune(line[0]))
}

// linuxMACPattern accepts colon- or dash-separated hex-pair MACs after a
// "link/<proto>" marker.
var linuxMACPattern = regexp.MustCompile(`(?i)link/\w+ ([0-9a-f:]{17}|[0-9a-f]{2}(?:-[0-9a-f]{2}){5})`)

// parseIPAddr parses `ip -o addr show` output: one compact line per address
// record, multiple lines per interface. Records are accumulated into a
// name-keyed map; an interface that never contributes a recognized family
// line never materializes, so addressless entries are dropped implicitly.
// The source format does not guarantee stable ordering, so the result is
// sorted by interface name for determinism.
func parseIPAddr(out string) []model.NetworkInterface {
	result := make([]model.NetworkInterface, 0)
	if out == "" {
		return result
	}

	byName := make(map[string]*model.NetworkInterface)
	get := func(name string) *model.NetworkInterface {
		iface, ok := byName[name]
		if !ok {
			iface = &model.NetworkInterface{Name: name}
			byName[name] = iface
		}
		return iface
	}

	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		name := fields[1]
		family := fields[2]
		addr, _, _ := strings.Cut(fields[3], "/")

		switch family {
		case "link":
			if m := linuxMACPattern.FindStringSubmatch(line); m != nil {
				iface := get(name)
				if iface.MAC == nil {
					iface.MAC = model.Ptr(m[1])
				}
			}
		case "inet":
			iface := get(name)
			iface.IPv4 = append(iface.IPv4, addr)
		case "inet6":
			iface := get(name)
			iface.IPv6 = append(iface.IPv6, addr)
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result = append(result, *byName[name])
	}
	return result
}

var (
	bsdHeaderPattern = regexp.MustCompile(`^(\S+):`)
	bsdEtherPattern  = regexp.MustCompile(`ether ([0-9a-f:]{17})`)
	bsdInetPattern   = regexp.MustCompile(`inet (\d+\.\d+\.\d+\.\d+)`)
	bsdInet6Pattern  = regexp.MustCompile(`inet6 ([0-9a-f:]+)`)
)

// parseIfconfig parses BSD/macOS `ifconfig -a` output. The format is
// indentation-structured: an un-indented line starts a new interface, and
// the indented lines below it carry the addresses. For the MAC the last
// "ether" token wins, unlike the Linux parser where the first "link" line
// wins; BSD output can repeat the ether line per alias block, and the
// asymmetry is preserved as observed rather than unified. Interfaces that
// recorded neither a MAC nor an address are dropped, matching the Linux
// accumulation behavior.
func parseIfconfig(out string) []model.NetworkInterface {
	result := make([]model.NetworkInterface, 0)
	if out == "" {
		return result
	}

	var cur *model.NetworkInterface
	flush := func() {
		if cur != nil && (cur.MAC != nil || len(cur.IPv4) > 0 || len(cur.IPv6) > 0) {
			result = append(result, *cur)
		}
		cur = nil
	}

	for _, line := range splitLines(out) {
		if !strings.HasPrefix(line, "\t") {
			flush()
			if m := bsdHeaderPattern.FindStringSubmatch(line); m != nil {
				cur = &model.NetworkInterface{Name: m[1]}
				// some systems put the ether token on the header line
				if em := bsdEtherPattern.FindStringSubmatch(line); em != nil {
					cur.MAC = model.Ptr(em[1])
				}
			}
			continue
		}
		if cur == nil {
			continue
		}

		if m := bsdInetPattern.FindStringSubmatch(line); m != nil {
			cur.IPv4 = append(cur.IPv4, m[1])
		}
		if m := bsdInet6Pattern.FindStringSubmatch(line); m != nil {
			cur.IPv6 = append(cur.IPv6, m[1])
		}
		if m := bsdEtherPattern.FindStringSubmatch(line); m != nil {
			cur.MAC = model.Ptr(m[1])
		}
	}
	flush()

	return result
}
