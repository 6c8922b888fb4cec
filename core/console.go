// Debug console served over the UART.
//
// The console runs as a scheduler task: each invocation drains buffered
// input, executes at most the completed lines, and polls the outcome of a
// previously started bus transaction. It never blocks on the TWI
// controller; a transaction started by one invocation is reported by a
// later one.
package core

import "strings"

const consoleLineMax = 64

// Console is a line-oriented shell driving the TWI controller and the
// digital output pins, used from a host machine over the serial line.
type Console struct {
	twi  *TWI
	uart *UART
	pins map[Pin]*DigitalOut

	line    [consoleLineMax]byte
	lineLen int
	tooLong bool

	// In-flight transaction started from the console. The data buffer
	// is owned by the controller while result is pending.
	pending     bool
	pendingRead bool
	result      Result
	data        [32]byte
	dataLen     int
}

// NewConsole creates a console bound to the given controller and UART.
func NewConsole(twi *TWI, uart *UART) *Console {
	return &Console{
		twi:  twi,
		uart: uart,
		pins: make(map[Pin]*DigitalOut),
	}
}

// Task is the scheduler entry point.
func (c *Console) Task() {
	c.pollTransaction()
	for {
		b, ok := c.uart.ReadByte()
		if !ok {
			return
		}
		c.handleByte(b)
	}
}

func (c *Console) handleByte(b byte) {
	switch b {
	case '\r':
		// Ignored; lines are terminated by LF.
	case '\n':
		line := string(c.line[:c.lineLen])
		tooLong := c.tooLong
		c.lineLen = 0
		c.tooLong = false
		if tooLong {
			c.uart.WriteLine("err line too long")
			return
		}
		c.execute(line)
	default:
		if c.lineLen == len(c.line) {
			c.tooLong = true
			return
		}
		c.line[c.lineLen] = b
		c.lineLen++
	}
}

func (c *Console) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "help":
		c.uart.WriteLine("commands: i2cw <addr> <reg> <byte>... | i2cr <addr> <reg> <len> | pin <n> <0|1> | status | help")
	case "status":
		c.uart.WriteLine("result=" + c.result.String() + " code=0x" + hex8(c.twi.ErrorCode()))
	case "pin":
		c.execPin(fields[1:])
	case "i2cw":
		c.execWrite(fields[1:])
	case "i2cr":
		c.execRead(fields[1:])
	default:
		c.uart.WriteLine("err unknown command")
	}
}

func (c *Console) execPin(args []string) {
	if len(args) != 2 {
		c.uart.WriteLine("err usage: pin <n> <0|1>")
		return
	}
	n, ok := parseNum(args[0])
	v, ok2 := parseNum(args[1])
	if !ok || !ok2 || v > 1 {
		c.uart.WriteLine("err bad argument")
		return
	}

	pin := Pin(n)
	out, exists := c.pins[pin]
	if !exists {
		var err error
		out, err = NewDigitalOut(pin, false)
		if err != nil {
			c.uart.WriteLine("err " + err.Error())
			return
		}
		c.pins[pin] = out
	}
	if err := out.Set(v == 1); err != nil {
		c.uart.WriteLine("err " + err.Error())
		return
	}
	c.uart.WriteLine("ok")
}

func (c *Console) execWrite(args []string) {
	if len(args) < 2 {
		c.uart.WriteLine("err usage: i2cw <addr> <reg> <byte>...")
		return
	}
	if c.pending {
		c.uart.WriteLine("err busy")
		return
	}
	addr, ok := parseNum(args[0])
	reg, ok2 := parseNum(args[1])
	if !ok || !ok2 {
		c.uart.WriteLine("err bad argument")
		return
	}

	payload := args[2:]
	if len(payload) > len(c.data) {
		c.uart.WriteLine("err too many bytes")
		return
	}
	for i, arg := range payload {
		b, ok := parseNum(arg)
		if !ok {
			c.uart.WriteLine("err bad argument")
			return
		}
		c.data[i] = b
	}
	c.dataLen = len(payload)

	if err := c.twi.WriteRegister(addr, reg, c.data[:c.dataLen], &c.result); err != nil {
		c.uart.WriteLine("err " + err.Error())
		return
	}
	c.pending = true
	c.pendingRead = false
}

func (c *Console) execRead(args []string) {
	if len(args) != 3 {
		c.uart.WriteLine("err usage: i2cr <addr> <reg> <len>")
		return
	}
	if c.pending {
		c.uart.WriteLine("err busy")
		return
	}
	addr, ok := parseNum(args[0])
	reg, ok2 := parseNum(args[1])
	n, ok3 := parseNum(args[2])
	if !ok || !ok2 || !ok3 || int(n) > len(c.data) {
		c.uart.WriteLine("err bad argument")
		return
	}
	c.dataLen = int(n)

	if err := c.twi.ReadRegister(addr, reg, c.data[:c.dataLen], &c.result); err != nil {
		c.uart.WriteLine("err " + err.Error())
		return
	}
	c.pending = true
	c.pendingRead = true
}

// pollTransaction reports the outcome of a console-started transaction
// once the interrupt handler has resolved it.
func (c *Console) pollTransaction() {
	if !c.pending || c.result == ResultPending {
		return
	}
	c.pending = false

	if c.result != ResultOK {
		c.uart.WriteLine("err " + c.result.String() + " code=0x" + hex8(c.twi.ErrorCode()))
		return
	}
	if !c.pendingRead {
		c.uart.WriteLine("ok")
		return
	}

	out := "ok"
	for _, b := range c.data[:c.dataLen] {
		out += " " + hex8(b)
	}
	c.uart.WriteLine(out)
}
