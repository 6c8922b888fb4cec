//go:build avr

package main

import (
	"errors"

	"device/avr"

	"github.com/bluezephyr/bitloom-avr/core"
)

var errInvalidPin = errors.New("pin out of range")

// ledPin is PB5, the on-board LED on Arduino Uno style boards.
const ledPin = core.Pin(5)

// pinDriver implements core.PinDriver on port B. Pin numbers map
// directly to port bits 0-7.
type pinDriver struct{}

func (pinDriver) ConfigureOutput(pin core.Pin) error {
	if pin > 7 {
		return errInvalidPin
	}
	avr.DDRB.SetBits(1 << pin)
	return nil
}

func (pinDriver) SetPin(pin core.Pin, value bool) error {
	if pin > 7 {
		return errInvalidPin
	}
	if value {
		avr.PORTB.SetBits(1 << pin)
	} else {
		avr.PORTB.ClearBits(1 << pin)
	}
	return nil
}
