package collector

import (
	"context"
	"os"
	"os/user"
	"strings"

	"github.com/mkarolak/hostprobe/pkg/model"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/source"
)

// domainCommands is the POSIX lookup cascade: the first command whose output
// is non-empty and not a "no value" sentinel wins.
var domainCommands = [][]string{
	{"hostname", "-d"},
	{"dnsdomainname"},
	{"domainname"},
}

// domainSentinels are outputs that mean "no domain configured" rather than a
// real value. Matched case-insensitively, exact.
var domainSentinels = map[string]bool{
	"(none)":  true,
	"unknown": true,
}

func collectIdentity(ctx context.Context, src source.Source, kind platform.Kind, _ Options) model.BasicConfig {
	cfg := model.BasicConfig{
		CurrentUser: currentUser(kind),
		OS:          osInfo(),
	}

	if name, err := os.Hostname(); err == nil {
		cfg.Hostname = name
	}
	cfg.Domain = domainName(ctx, src, kind)
	cfg.Users = localUsers(ctx, src, kind)

	return cfg
}

func osInfo() model.OSInfo {
	d := platform.Describe()
	return model.OSInfo{
		System:       d.System,
		Release:      d.Release,
		Version:      d.Version,
		Architecture: d.Architecture,
	}
}

// domainName resolves the domain or workgroup the host is joined to. nil
// means not joined or undetermined, which is distinct from "".
func domainName(ctx context.Context, src source.Source, kind platform.Kind) *string {
	if kind == platform.Windows {
		out := src.Output(ctx, "wmic", "computersystem", "get", "domain")
		// first non-blank line is the "Domain" heading; the value is the
		// last non-blank line after it
		lines := nonBlankLines(out)
		if len(lines) >= 2 {
			return model.Ptr(lines[len(lines)-1])
		}
		if d := os.Getenv("USERDOMAIN"); d != "" {
			return model.Ptr(d)
		}
		return nil
	}

	for _, argv := range domainCommands {
		out := src.Output(ctx, argv[0], argv[1:]...)
		if out == "" || domainSentinels[strings.ToLower(out)] {
			continue
		}
		return model.Ptr(out)
	}
	return nil
}

func currentUser(kind platform.Kind) string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		// Windows reports DOMAIN\user
		if i := strings.LastIndexByte(name, '\\'); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	if kind == platform.Windows {
		return os.Getenv("USERNAME")
	}
	return os.Getenv("USER")
}

// localUsers enumerates local account names. System and service accounts are
// included on purpose: for investigative use, completeness beats noise
// reduction.
func localUsers(ctx context.Context, src source.Source, kind platform.Kind) []string {
	if kind == platform.Windows {
		return parseNetUser(src.Output(ctx, "net", "user"))
	}
	return parsePasswd(src.ReadFile("/etc/passwd"))
}

// parseNetUser extracts account names from `net user` output. Names are laid
// out in columns below a dashed divider line; the first blank line after the
// divider ends the listing.
func parseNetUser(out string) []string {
	users := []string{}
	if out == "" {
		return users
	}

	collecting := false
	for _, line := range splitLines(out) {
		if !collecting {
			if strings.HasPrefix(strings.TrimSpace(line), "---") {
				collecting = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		users = append(users, strings.Fields(line)...)
	}
	return users
}

// parsePasswd takes the first ':'-separated field of each non-blank,
// non-comment line of an /etc/passwd-style account database.
func parsePasswd(content string) []string {
	users := []string{}
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, _ := strings.Cut(line, ":")
		users = append(users, name)
	}
	return users
}
