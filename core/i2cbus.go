package core

import (
	"errors"
	"runtime"

	"tinygo.org/x/drivers"
)

// ErrUnsupportedTx is returned for transaction shapes the controller does
// not implement. Only register-qualified transfers exist on this bus:
// plain reads without a register selection were dropped from the protocol.
var ErrUnsupportedTx = errors.New("twi: unsupported transaction shape")

// I2CBus adapts the asynchronous TWI controller to the blocking bus
// interface used by the tinygo.org/x/drivers device catalog. Each call
// submits one transaction and polls the result slot until the interrupt
// handler completes it, yielding to the runtime while waiting.
//
// Do not mix I2CBus calls with direct TWI requests from another context;
// the busy/idle protocol of the controller still applies.
type I2CBus struct {
	twi *TWI
}

var _ drivers.I2C = (*I2CBus)(nil)

// NewI2CBus wraps the given controller.
func NewI2CBus(twi *TWI) *I2CBus {
	return &I2CBus{twi: twi}
}

// Tx implements drivers.I2C. Supported shapes:
//
//	w=[reg], r=buf        register read
//	w=[reg, data...], r=nil  register write
//
// Anything else returns ErrUnsupportedTx.
func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	switch {
	case len(w) == 1 && len(r) > 0:
		return b.ReadRegister(uint8(addr), w[0], r)
	case len(w) >= 1 && len(r) == 0:
		return b.WriteRegister(uint8(addr), w[0], w[1:])
	default:
		return ErrUnsupportedTx
	}
}

// WriteRegister writes buf to the given device register and blocks until
// the transaction completes.
func (b *I2CBus) WriteRegister(addr uint8, reg uint8, buf []byte) error {
	var result Result
	if err := b.twi.WriteRegister(addr, reg, buf, &result); err != nil {
		return err
	}
	return waitResult(&result)
}

// ReadRegister reads len(buf) bytes from the given device register and
// blocks until the transaction completes.
func (b *I2CBus) ReadRegister(addr uint8, reg uint8, buf []byte) error {
	var result Result
	if err := b.twi.ReadRegister(addr, reg, buf, &result); err != nil {
		return err
	}
	return waitResult(&result)
}

func waitResult(result *Result) error {
	for *result == ResultPending {
		runtime.Gosched()
	}
	return result.Err()
}
