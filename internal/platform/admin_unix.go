//go:build unix

package platform

import "golang.org/x/sys/unix"

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return unix.Geteuid() == 0
}

const AdminHint = "Run the tool again with sudo"
