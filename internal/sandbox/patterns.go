// Package sandbox enforces the resource limits and command filtering
// a worker's tool executions run under (spec §4.7).
package sandbox

import "strings"

// dangerousPatternGroups mirrors the original agent's denylist: a
// command is suspicious if it contains any string from one of these
// groups.
var dangerousPatternGroups = [][]string{
	{"sudo", "doas", "pkexec"},
	{"apt install", "apt-get install", "pip install", "npm install"},
	{"wget", "curl", "nc ", "ncat", "telnet"},
	{"iptables", "ufw", "mount", "umount"},
	{"killall", "pkill", "kill -9", "kill -sigkill"},
}

// CheckResult is the outcome of filtering one command string.
type CheckResult struct {
	Allowed bool
	Reasons []string
}

// Filter applies the allowlist/denylist policy to shell commands.
type Filter struct {
	allowlist    []string
	denylist     []string
	blockedCount int
}

// NewFilter builds a Filter. An empty allowlist means "nothing is
// explicitly allowed" — any suspicious pattern is blocked.
func NewFilter(allowlist, denylist []string) *Filter {
	return &Filter{allowlist: allowlist, denylist: denylist}
}

// BlockedCount returns the number of commands blocked so far.
func (f *Filter) BlockedCount() int { return f.blockedCount }

// CheckCommand decides whether a command may run, matching each
// dangerous pattern group against the lowercased command text.
func (f *Filter) CheckCommand(command string) CheckResult {
	lower := strings.ToLower(command)
	var reasons []string

	for _, group := range dangerousPatternGroups {
		matched, pattern := matchesAny(lower, group)
		if !matched {
			continue
		}

		switch {
		case contains(f.denylist, pattern):
			reasons = append(reasons, "explicitly denied: "+pattern)
		case len(f.allowlist) > 0:
			if !matchesAnyString(lower, f.allowlist) {
				reasons = append(reasons, "not in allowlist: "+pattern)
			}
		default:
			reasons = append(reasons, "suspicious pattern: "+pattern)
		}
	}

	if len(reasons) > 0 {
		f.blockedCount++
		return CheckResult{Allowed: false, Reasons: reasons}
	}
	return CheckResult{Allowed: true}
}

func matchesAny(lower string, group []string) (bool, string) {
	for _, p := range group {
		if strings.Contains(lower, p) {
			return true, p
		}
	}
	return false, ""
}

func matchesAnyString(lower string, list []string) bool {
	for _, p := range list {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
