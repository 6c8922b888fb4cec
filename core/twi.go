// TWI (two-wire interface) master controller.
//
// The controller executes register-oriented bus transactions one hardware
// event at a time: the request functions run in foreground context, populate
// the transaction context and transmit the START condition; every further
// bus event raises the TWI interrupt, whose handler calls HandleEvent to
// advance the state machine exactly one step. No call in this file blocks.
package core

import "errors"

// ErrBusy is returned by the request functions when a transaction is
// already in flight. The in-flight transaction is unaffected.
var ErrBusy = errors.New("twi: controller busy")

// Sentinel errors corresponding to the transaction error results, used by
// the blocking bus adapter and the debug console.
var (
	ErrStartCondition = errors.New("twi: start condition failed")
	ErrAddressNACK    = errors.New("twi: address not acknowledged")
	ErrRegisterNACK   = errors.New("twi: register index not acknowledged")
	ErrDataNACK       = errors.New("twi: data byte not acknowledged")
	ErrRepeatedStart  = errors.New("twi: repeated start failed")
	ErrReceiveFailed  = errors.New("twi: receive failed")
)

// Result is the outcome of a transaction, written exactly once into the
// caller-supplied result slot when the transaction completes.
type Result uint8

const (
	// ResultPending is stored in the result slot when a request is
	// accepted. The caller must not touch the data buffer or submit a
	// new request until the slot changes to one of the final values.
	ResultPending Result = iota

	// ResultOK - the transaction completed successfully.
	ResultOK

	// ResultStartError - the START condition failed.
	ResultStartError

	// ResultAddressError - the slave did not acknowledge its address.
	ResultAddressError

	// ResultRegisterError - the register index byte was not acknowledged.
	ResultRegisterError

	// ResultDataWriteError - a payload byte was not acknowledged.
	ResultDataWriteError

	// ResultRepeatedStartError - the repeated START before a read failed.
	ResultRepeatedStartError

	// ResultDataReadError - unexpected status during reception, including
	// arbitration loss.
	ResultDataReadError
)

// String returns a short name for the result, for the debug console.
func (r Result) String() string {
	switch r {
	case ResultPending:
		return "pending"
	case ResultOK:
		return "ok"
	case ResultStartError:
		return "start-error"
	case ResultAddressError:
		return "address-error"
	case ResultRegisterError:
		return "register-error"
	case ResultDataWriteError:
		return "data-write-error"
	case ResultRepeatedStartError:
		return "repeated-start-error"
	case ResultDataReadError:
		return "data-read-error"
	}
	return "unknown"
}

// Err converts a final result to its sentinel error. ResultOK yields nil;
// ResultPending yields ErrBusy since the transaction has not completed.
func (r Result) Err() error {
	switch r {
	case ResultOK:
		return nil
	case ResultPending:
		return ErrBusy
	case ResultStartError:
		return ErrStartCondition
	case ResultAddressError:
		return ErrAddressNACK
	case ResultRegisterError:
		return ErrRegisterNACK
	case ResultDataWriteError:
		return ErrDataNACK
	case ResultRepeatedStartError:
		return ErrRepeatedStart
	default:
		return ErrReceiveFailed
	}
}

// twiState is the current phase of the in-flight transaction.
type twiState uint8

const (
	stateIdle twiState = iota
	stateStart
	stateSendSlaveWrite
	stateWriteRegisterAddress
	stateWriteData
	stateRepeatedStart
	stateReadData
)

// twiOperation is the transaction shape the application requested.
type twiOperation uint8

const (
	opWriteRegister twiOperation = iota
	opReadRegister
)

// TWI is the master controller for one two-wire bus. It is the only mutable
// state shared between foreground and interrupt context: the foreground
// writes it only while idle, the interrupt handler owns it from request
// acceptance until the result slot is written. That handoff protocol is the
// sole synchronization; there are no locks.
type TWI struct {
	hw TWIHardware

	operation    twiOperation
	state        twiState
	slaveAddress uint8 // 7-bit, unshifted
	dataRegister uint8
	buffer       []byte
	handledBytes int
	result       *Result
	lastStatus   uint8
}

// NewTWI creates a controller driving the registered bus hardware. The
// controller starts idle.
func NewTWI() *TWI {
	return &TWI{hw: MustTWIHardware()}
}

// WriteRegister starts a transaction that writes buf to the given register
// of the slave device. If the controller is idle the request is accepted,
// *result is set to ResultPending, bus activity starts before the call
// returns and nil is returned. ErrBusy is returned otherwise.
//
// The controller borrows buf until *result leaves ResultPending; the caller
// must not touch buf or submit another request in that window.
func (t *TWI) WriteRegister(address, register uint8, buf []byte, result *Result) error {
	return t.request(opWriteRegister, address, register, buf, result)
}

// ReadRegister starts a transaction that selects the given register of the
// slave device and then reads len(buf) bytes into buf using a repeated
// START. Same contract as WriteRegister.
func (t *TWI) ReadRegister(address, register uint8, buf []byte, result *Result) error {
	return t.request(opReadRegister, address, register, buf, result)
}

// ErrorCode returns the raw bus status code captured by the most recent
// transaction. It is meaningful only after the result slot holds an error;
// otherwise the value is stale.
func (t *TWI) ErrorCode() uint8 {
	return t.lastStatus
}

// Idle reports whether the controller can accept a request.
func (t *TWI) Idle() bool {
	return t.state == stateIdle
}

func (t *TWI) request(op twiOperation, address, register uint8, buf []byte, result *Result) error {
	if t.state != stateIdle {
		return ErrBusy
	}

	t.operation = op
	t.slaveAddress = address
	t.dataRegister = register
	t.buffer = buf
	t.handledBytes = 0
	t.result = result
	*result = ResultPending

	// The transaction must begin before returning: the bus may not sit
	// silent between the caller's request and the first event.
	t.state = stateStart
	t.hw.Start()

	return nil
}

// HandleEvent advances the state machine by one step. It must be called
// once per TWI interrupt, and runs entirely in interrupt context.
//
// Each arm stores the next state before issuing the hardware action, the
// same order request uses for the START condition: a port whose action
// completes synchronously delivers the next event re-entrantly, and that
// nested step must observe consistent state.
func (t *TWI) HandleEvent() {
	status := t.hw.Status()
	event := DecodeStatus(status)
	t.lastStatus = status

	switch t.state {
	case stateIdle:
		// Spurious event with no transaction in flight. Nothing to do.

	case stateStart:
		if event != EventStartSent {
			t.fail(ResultStartError)
			return
		}
		t.state = stateSendSlaveWrite
		t.hw.WriteByte(t.slaveAddress << 1) // SLA+W

	case stateSendSlaveWrite:
		if event != EventAddressWriteACK {
			t.fail(ResultAddressError)
			return
		}
		t.state = stateWriteRegisterAddress
		t.hw.WriteByte(t.dataRegister)

	case stateWriteRegisterAddress:
		if event != EventDataWriteACK {
			t.fail(ResultRegisterError)
			return
		}
		if len(t.buffer) == 0 {
			// Zero-length transfer: nothing follows the register
			// selection for either operation.
			t.finish()
			return
		}
		if t.operation == opWriteRegister {
			t.state = stateWriteData
			b := t.buffer[t.handledBytes]
			t.handledBytes++
			t.hw.WriteByte(b)
		} else {
			t.state = stateRepeatedStart
			t.hw.Start() // repeated START
		}

	case stateWriteData:
		if event != EventDataWriteACK {
			t.fail(ResultDataWriteError)
			return
		}
		if t.handledBytes < len(t.buffer) {
			b := t.buffer[t.handledBytes]
			t.handledBytes++
			t.hw.WriteByte(b)
		} else {
			t.finish()
		}

	case stateRepeatedStart:
		if event != EventRepeatedStartSent {
			t.fail(ResultRepeatedStartError)
			return
		}
		t.state = stateReadData
		t.hw.WriteByte(t.slaveAddress<<1 | 1) // SLA+R

	case stateReadData:
		switch event {
		case EventAddressReadACK:
			// Reception starts now; arm the acknowledge for the
			// first incoming byte. len(buffer) > 0 here, the
			// zero-length case never leaves the register phase.
			t.armReceive()
		case EventDataReceivedACK, EventDataReceivedNACK:
			t.buffer[t.handledBytes] = t.hw.ReadByte()
			t.handledBytes++
			if t.handledBytes < len(t.buffer) {
				t.armReceive()
			} else {
				t.finish()
			}
		default:
			t.fail(ResultDataReadError)
		}
	}
}

// armReceive arms ACK for the next incoming byte, or NACK when that byte is
// the last one of the transfer. A read of N bytes issues exactly N-1 ACKs
// followed by one NACK.
func (t *TWI) armReceive() {
	if len(t.buffer)-t.handledBytes > 1 {
		t.hw.ReceiveACK()
	} else {
		t.hw.ReceiveNACK()
	}
}

// finish completes the transaction successfully: release the bus with
// STOP, release the buffer, report the result, return to idle.
func (t *TWI) finish() {
	t.complete(ResultOK)
}

// fail aborts the transaction: the raw status code stays captured in
// lastStatus for ErrorCode, the bus is released with STOP so it is never
// left wedged, and the error is reported through the result slot.
func (t *TWI) fail(r Result) {
	t.complete(r)
}

func (t *TWI) complete(r Result) {
	result := t.result
	t.buffer = nil
	t.result = nil
	// Idle before STOP reaches the hardware: a spurious event raised
	// during the action finds no transaction in flight.
	t.state = stateIdle
	t.hw.Stop()
	// The result slot is written last: once the caller observes a final
	// result the controller is already idle and the buffer released.
	*result = r
}
