package core

// Pin identifies a hardware pin number within the output port.
type Pin uint8

// PinDriver is the abstract digital output interface that core code uses.
// Platform-specific implementations handle the port registers.
type PinDriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin Pin) error

	// SetPin drives the pin high (true) or low (false)
	SetPin(pin Pin, value bool) error
}

// Global singleton used by core code.
var pinDriver PinDriver

// SetPinDriver is called by target-specific code to register its driver.
func SetPinDriver(d PinDriver) {
	pinDriver = d
}

// MustPinDriver returns the configured driver or panics if missing.
func MustPinDriver() PinDriver {
	if pinDriver == nil {
		panic("pin driver not configured")
	}
	return pinDriver
}
