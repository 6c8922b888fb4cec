// Package board implements the host side of the firmware's serial
// console protocol: newline-terminated text commands down, "ok ..." or
// "err ..." response lines back.
package board

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/bluezephyr/bitloom-avr/host/serial"
)

// Board represents a connection to a board running the firmware
type Board struct {
	port serial.Port

	// Lines received from the board, delivered by the reader goroutine
	lines chan string

	connected bool
}

// Connect opens the serial device and starts the reader
func Connect(device string, baud int) (*Board, error) {
	cfg := serial.DefaultConfig(device)
	if baud > 0 {
		cfg.Baud = baud
	}

	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	return New(port), nil
}

// New wraps an already open port; used by Connect and by tests with a
// mock port
func New(port serial.Port) *Board {
	b := &Board{
		port:      port,
		lines:     make(chan string, 16),
		connected: true,
	}
	go b.readerLoop()
	return b
}

// Close closes the connection to the board
func (b *Board) Close() error {
	b.connected = false
	if b.port != nil {
		return b.port.Close()
	}
	return nil
}

// readerLoop reads response lines from the serial port and delivers
// them on the lines channel. It exits when the port is closed.
func (b *Board) readerLoop() {
	scanner := bufio.NewScanner(b.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case b.lines <- line:
		default:
			// Drop if nobody is draining; the console is line oriented
			// and unsolicited output (the boot banner, sensor tasks)
			// must not wedge the reader.
		}
	}
	close(b.lines)
}

// Lines returns the channel of response lines from the board
func (b *Board) Lines() <-chan string {
	return b.lines
}

// Send transmits one command line to the board
func (b *Board) Send(line string) error {
	if !b.connected {
		return fmt.Errorf("not connected")
	}
	_, err := b.port.Write([]byte(line + "\n"))
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

// WaitResponse waits for the next line from the board
func (b *Board) WaitResponse(timeout time.Duration) (string, error) {
	select {
	case line, ok := <-b.lines:
		if !ok {
			return "", fmt.Errorf("connection closed")
		}
		return line, nil
	case <-time.After(timeout):
		return "", fmt.Errorf("timeout waiting for response")
	}
}

// SetPin sends a pin command driving the given pin high or low
func (b *Board) SetPin(pin uint8, high bool) error {
	level := 0
	if high {
		level = 1
	}
	return b.Send(fmt.Sprintf("pin %d %d", pin, level))
}

// WriteRegister sends an i2cw command writing data to a slave register
func (b *Board) WriteRegister(addr, reg uint8, data []byte) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "i2cw 0x%02x 0x%02x", addr, reg)
	for _, d := range data {
		fmt.Fprintf(&sb, " 0x%02x", d)
	}
	return b.Send(sb.String())
}

// ReadRegister sends an i2cr command reading count bytes from a slave
// register
func (b *Board) ReadRegister(addr, reg, count uint8) error {
	return b.Send(fmt.Sprintf("i2cr 0x%02x 0x%02x %d", addr, reg, count))
}
