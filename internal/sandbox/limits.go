package sandbox

import (
	"fmt"
	"strconv"

	"golang.org/x/sys/unix"
)

// ResourceLimits mirrors the original agent's resource limit dataclass,
// applied to a sandboxed subprocess via setrlimit before exec.
type ResourceLimits struct {
	MaxCPUTimeSecs    int  `json:"max_cpu_time_secs"`
	MaxMemoryMB       int  `json:"max_memory_mb"`
	MaxProcesses      int  `json:"max_processes"`
	MaxOpenFiles      int  `json:"max_open_files"`
	TimeoutKillSignal bool `json:"timeout_kill_signal"`
}

// DefaultResourceLimits matches the original agent's dataclass defaults.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxCPUTimeSecs:    30,
		MaxMemoryMB:       1024,
		MaxProcesses:      100,
		MaxOpenFiles:      1024,
		TimeoutKillSignal: true,
	}
}

// Apply sets the process resource limits for the calling process via
// setrlimit. It is intended to run inside a child process's
// exec.Cmd.SysProcAttr-driven fork, before the target binary execs —
// callers typically invoke it from an os/exec Cmd's pre-exec hook on
// platforms that support one, or accept the best-effort limits applied
// to the current process on platforms that don't.
func (l ResourceLimits) Apply() error {
	if err := setRlimit(unix.RLIMIT_CPU, uint64(l.MaxCPUTimeSecs)); err != nil {
		return fmt.Errorf("set cpu rlimit: %w", err)
	}
	memBytes := uint64(l.MaxMemoryMB) * 1024 * 1024
	if err := setRlimit(unix.RLIMIT_AS, memBytes); err != nil {
		return fmt.Errorf("set memory rlimit: %w", err)
	}
	if err := setRlimit(unix.RLIMIT_NPROC, uint64(l.MaxProcesses)); err != nil {
		return fmt.Errorf("set nproc rlimit: %w", err)
	}
	if err := setRlimit(unix.RLIMIT_NOFILE, uint64(l.MaxOpenFiles)); err != nil {
		return fmt.Errorf("set nofile rlimit: %w", err)
	}
	return nil
}

func setRlimit(resource int, value uint64) error {
	rlim := unix.Rlimit{Cur: value, Max: value}
	return unix.Setrlimit(resource, &rlim)
}

// shellPrelude renders the limits as `ulimit` statements, preceded by a
// `renice` that lowers the shell's priority by 5, prefixed onto a
// sandboxed shell command, so the caps apply to the forked "sh -c"
// subprocess without touching the irisd process's own limits.
func (l ResourceLimits) shellPrelude() string {
	return "renice -n 5 -p $$ >/dev/null 2>&1; " +
		"ulimit -t " + strconv.Itoa(l.MaxCPUTimeSecs) +
		" -v " + strconv.Itoa(l.MaxMemoryMB*1024) +
		" -u " + strconv.Itoa(l.MaxProcesses) +
		" -n " + strconv.Itoa(l.MaxOpenFiles) +
		" 2>/dev/null; "
}
