//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts and returns the previous state.
// Used to protect the short critical sections shared with ISR context.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt mask state.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
