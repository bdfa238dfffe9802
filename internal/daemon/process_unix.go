//go:build !windows

package daemon

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}

func terminateProcess(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

// detachedAttr starts the child in its own session.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
