package core

// DigitalOut is a configured digital output pin. The driver keeps no
// hardware state beyond the port register bit; the cached value only
// serves Toggle.
type DigitalOut struct {
	pin   Pin
	value bool
}

// NewDigitalOut configures the pin as an output, driven to the initial
// value.
func NewDigitalOut(pin Pin, initial bool) (*DigitalOut, error) {
	d := &DigitalOut{pin: pin}
	if err := MustPinDriver().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	if err := d.Set(initial); err != nil {
		return nil, err
	}
	return d, nil
}

// Set drives the pin to the given level.
func (d *DigitalOut) Set(value bool) error {
	if err := MustPinDriver().SetPin(d.pin, value); err != nil {
		return err
	}
	d.value = value
	return nil
}

// High drives the pin high.
func (d *DigitalOut) High() error {
	return d.Set(true)
}

// Low drives the pin low.
func (d *DigitalOut) Low() error {
	return d.Set(false)
}

// Toggle inverts the pin level.
func (d *DigitalOut) Toggle() error {
	return d.Set(!d.value)
}
