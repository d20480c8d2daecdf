package iris

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// staleLockAfter bounds how long a lock file may persist before it is
// considered abandoned by a crashed process and reclaimed. The original
// agent's lock is a bare spin-on-existence file with no way to recover
// from a process that dies holding it; this one embeds the holder's PID
// so a stuck lock can be safely broken instead of wedging the project
// forever.
const staleLockAfter = 30 * time.Second

// FileLock is a cross-process advisory lock backed by a PID-bearing
// file: the holder's PID lets a waiter detect and reclaim a lock left
// behind by a process that crashed while holding it.
type FileLock struct {
	path     string
	acquired bool
}

// NewFileLock returns a lock backed by the given path. It is not held
// until Acquire succeeds.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Acquire blocks until the lock is obtained, reclaiming it immediately
// if the current holder's PID is no longer alive or its lock file is
// older than staleLockAfter.
func (l *FileLock) Acquire() error {
	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n%d", os.Getpid(), time.Now().Unix())
			f.Close()
			l.acquired = true
			return nil
		}
		if !os.IsExist(err) {
			return err
		}

		if l.reclaimIfStale() {
			continue
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Release removes the lock file, if this instance holds it.
func (l *FileLock) Release() error {
	if !l.acquired {
		return nil
	}
	l.acquired = false
	err := os.Remove(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// reclaimIfStale removes the lock file and returns true if its holder
// is dead or the file has outlived staleLockAfter.
func (l *FileLock) reclaimIfStale() bool {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return false
	}

	parts := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)
	var pid int
	var acquiredAt int64
	if len(parts) > 0 {
		pid, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		acquiredAt, _ = strconv.ParseInt(parts[1], 10, 64)
	}

	if pid > 0 && processAlive(pid) && time.Since(time.Unix(acquiredAt, 0)) < staleLockAfter {
		return false
	}

	err = os.Remove(l.path)
	return err == nil || os.IsNotExist(err)
}

// processAlive reports whether pid refers to a live process, using
// signal 0 which performs permission/existence checks without
// delivering anything.
func processAlive(pid int) bool {
	if err := syscall.Kill(pid, 0); err != nil {
		return err == syscall.EPERM
	}
	return true
}
