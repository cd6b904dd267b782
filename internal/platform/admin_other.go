//go:build !unix && !windows

package platform

// IsAdmin is always false where privileges cannot be inspected.
func IsAdmin() bool {
	return false
}

const AdminHint = "Set require_admin to false to run without privilege checks"
