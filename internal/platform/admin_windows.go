//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsAdmin reports whether the process token is elevated.
func IsAdmin() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

const AdminHint = "Right-click the executable and choose 'Run as administrator'"
