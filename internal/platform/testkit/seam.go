package testkit

import "testing"

// Swap swaps a package-level variable (usually a function seam) for the duration of the test
// and restores it after
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}
