package core

// FifoBuffer is a fixed-capacity circular byte buffer used between an
// interrupt-context producer and a foreground consumer. With exactly one
// producer and one consumer the read and write indices each have a single
// writer, so no locking is required.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a FifoBuffer with the specified capacity. One slot
// is sacrificed to distinguish full from empty.
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// WriteByte appends one byte. It reports false when the buffer is full, in
// which case the byte is dropped.
func (f *FifoBuffer) WriteByte(b byte) bool {
	nextWrite := (f.write + 1) % f.size
	if nextWrite == f.read {
		return false
	}
	f.buf[f.write] = b
	f.write = nextWrite
	return true
}

// ReadByte removes and returns the oldest byte. It reports false when the
// buffer is empty.
func (f *FifoBuffer) ReadByte() (byte, bool) {
	if f.read == f.write {
		return 0, false
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, true
}

// Read reads up to len(data) bytes and returns the number read.
func (f *FifoBuffer) Read(data []byte) int {
	read := 0
	for i := range data {
		b, ok := f.ReadByte()
		if !ok {
			break
		}
		data[i] = b
		read++
	}
	return read
}

// Available returns the number of bytes available for reading.
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// IsEmpty returns true if the buffer is empty.
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer. Only safe while the producer is quiet.
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
