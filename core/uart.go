package core

// UART is a buffered serial line. Received bytes are pushed by the RX
// interrupt into a ring buffer and drained by foreground code; transmission
// goes straight to the hardware.
type UART struct {
	hw      UARTHardware
	rx      *FifoBuffer
	dropped uint16
}

// NewUART creates a UART over the registered hardware with an RX buffer of
// the given capacity.
func NewUART(rxCapacity int) *UART {
	return &UART{
		hw: MustUARTHardware(),
		rx: NewFifoBuffer(rxCapacity),
	}
}

// ReceiveByte stores one received byte. Called from the RX interrupt; the
// ring buffer is single-producer/single-consumer so no masking is needed.
// When the buffer is full the byte is dropped and counted.
func (u *UART) ReceiveByte(b byte) {
	if !u.rx.WriteByte(b) {
		u.dropped++
	}
}

// ReadByte returns the oldest received byte, or false if none is buffered.
func (u *UART) ReadByte() (byte, bool) {
	return u.rx.ReadByte()
}

// Read reads up to len(p) received bytes and returns the number read. It
// never blocks.
func (u *UART) Read(p []byte) int {
	return u.rx.Read(p)
}

// Buffered returns the number of received bytes waiting to be read.
func (u *UART) Buffered() int {
	return u.rx.Available()
}

// Dropped returns the number of received bytes discarded because the RX
// buffer was full.
func (u *UART) Dropped() uint16 {
	return u.dropped
}

// Write transmits p.
func (u *UART) Write(p []byte) {
	for _, b := range p {
		u.hw.WriteByte(b)
	}
}

// WriteString transmits s.
func (u *UART) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		u.hw.WriteByte(s[i])
	}
}

// WriteLine transmits s followed by CRLF.
func (u *UART) WriteLine(s string) {
	u.WriteString(s)
	u.WriteString("\r\n")
}
