package core

// TWIHardware is the abstract two-wire bus controller interface that the
// TWI state machine drives. Each method maps to a single hardware action;
// the hardware raises the next bus-event interrupt after any of them.
type TWIHardware interface {
	// Status returns the raw bus status code captured after the last
	// bus event (TWSR with the prescaler bits masked on the ATmega).
	Status() uint8

	// Start transmits a START condition. The same action produces a
	// repeated START when the bus is already held by this master.
	Start()

	// Stop transmits a STOP condition and releases the bus. Unlike the
	// other actions, STOP does not raise a further interrupt in master
	// mode.
	Stop()

	// WriteByte loads a byte (SLA+R/W or data) into the data register
	// and starts its transmission.
	WriteByte(b uint8)

	// ReadByte returns the byte received after the last bus event.
	ReadByte() uint8

	// ReceiveACK resumes reception with ACK armed for the next byte.
	ReceiveACK()

	// ReceiveNACK resumes reception with NACK armed for the next byte.
	ReceiveNACK()
}

// Global singleton used by core code.
var twiHardware TWIHardware

// SetTWIHardware is called by target-specific code to register its bus
// controller implementation.
func SetTWIHardware(hw TWIHardware) {
	twiHardware = hw
}

// MustTWIHardware returns the registered bus controller or panics if missing.
func MustTWIHardware() TWIHardware {
	if twiHardware == nil {
		panic("TWI hardware not configured")
	}
	return twiHardware
}
