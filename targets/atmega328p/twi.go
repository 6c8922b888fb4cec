//go:build avr

package main

import (
	"device/avr"
	"runtime/interrupt"

	"github.com/bluezephyr/bitloom-avr/core"
)

// TWBR value for roughly 100 kHz SCL at 16 MHz with prescaler 1:
// SCL = F_CPU / (16 + 2*TWBR*prescaler).
const twiBitRate = 72

// twiHardware implements core.TWIHardware on the ATmega328P TWI block.
// Every method programs TWCR with TWINT set, which clears the interrupt
// flag and lets the bus proceed; the next TWI interrupt delivers the
// outcome to the controller.
type twiHardware struct{}

func (twiHardware) Status() uint8 {
	// Mask out the prescaler bits in TWSR[1:0].
	return avr.TWSR.Get() & 0xF8
}

func (twiHardware) Start() {
	avr.TWCR.Set(avr.TWCR_TWINT | avr.TWCR_TWSTA | avr.TWCR_TWEN | avr.TWCR_TWIE)
}

func (twiHardware) Stop() {
	// TWSTO clears itself when the STOP condition has been transmitted.
	// No interrupt follows, so TWIE stays set for the next transaction.
	avr.TWCR.Set(avr.TWCR_TWINT | avr.TWCR_TWSTO | avr.TWCR_TWEN | avr.TWCR_TWIE)
}

func (twiHardware) WriteByte(b uint8) {
	avr.TWDR.Set(b)
	avr.TWCR.Set(avr.TWCR_TWINT | avr.TWCR_TWEN | avr.TWCR_TWIE)
}

func (twiHardware) ReadByte() uint8 {
	return avr.TWDR.Get()
}

func (twiHardware) ReceiveACK() {
	avr.TWCR.Set(avr.TWCR_TWINT | avr.TWCR_TWEA | avr.TWCR_TWEN | avr.TWCR_TWIE)
}

func (twiHardware) ReceiveNACK() {
	avr.TWCR.Set(avr.TWCR_TWINT | avr.TWCR_TWEN | avr.TWCR_TWIE)
}

var twiController *core.TWI

// initTWI configures the TWI peripheral and hooks the TWI interrupt to
// the controller's event handler.
func initTWI() *core.TWI {
	core.SetTWIHardware(twiHardware{})
	twiController = core.NewTWI()

	avr.TWSR.ClearBits(avr.TWSR_TWPS0 | avr.TWSR_TWPS1) // prescaler 1
	avr.TWBR.Set(twiBitRate)
	avr.TWCR.Set(avr.TWCR_TWEN | avr.TWCR_TWIE)

	interrupt.New(avr.IRQ_TWI, handleTWIInterrupt)
	return twiController
}

func handleTWIInterrupt(interrupt.Interrupt) {
	twiController.HandleEvent()
}
