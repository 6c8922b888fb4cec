package core

// UARTHardware is the abstract serial line interface that core code uses.
// Reception is interrupt driven and flows the other way: the target's RX
// ISR pushes bytes into UART.ReceiveByte.
type UARTHardware interface {
	// WriteByte transmits one byte, waiting for the data register to be
	// free first. Transmission is the one place this HAL busy-waits;
	// console output is not timing critical.
	WriteByte(b byte)
}

// Global singleton used by core code.
var uartHardware UARTHardware

// SetUARTHardware is called by target-specific code to register its serial
// line implementation.
func SetUARTHardware(hw UARTHardware) {
	uartHardware = hw
}

// MustUARTHardware returns the registered serial line or panics if missing.
func MustUARTHardware() UARTHardware {
	if uartHardware == nil {
		panic("UART hardware not configured")
	}
	return uartHardware
}
