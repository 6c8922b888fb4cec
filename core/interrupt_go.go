//go:build !tinygo

package core

// State stands in for the interrupt mask state on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go. Host tests drive the
// interrupt side synchronously, so there is nothing to mask.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go
func restoreInterrupts(state State) {
}
