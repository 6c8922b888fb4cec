package core

import "testing"

// simTWIHardware simulates a slave that responds immediately: every
// hardware action produces the next bus event synchronously, so a
// transaction completes inside the request call and the blocking adapter
// never actually has to wait.
type simTWIHardware struct {
	twi *TWI

	status    uint8
	started   bool // bus held since the last STOP
	addressed bool // next WriteByte carries SLA+R/W

	ackAddress bool
	readData   []uint8
	readPos    int
	current    uint8

	sla     []uint8
	written []uint8
}

func newSimTWIHardware() *simTWIHardware {
	return &simTWIHardware{ackAddress: true}
}

func (s *simTWIHardware) event(status uint8) {
	s.status = status
	s.twi.HandleEvent()
}

func (s *simTWIHardware) Status() uint8 {
	return s.status
}

func (s *simTWIHardware) Start() {
	s.addressed = true
	if !s.started {
		s.started = true
		s.event(TWStatusStart)
	} else {
		s.event(TWStatusRepStart)
	}
}

func (s *simTWIHardware) Stop() {
	s.started = false
}

func (s *simTWIHardware) WriteByte(b uint8) {
	if s.addressed {
		s.addressed = false
		s.sla = append(s.sla, b)
		switch {
		case !s.ackAddress:
			s.event(TWStatusMTSlaNACK)
		case b&1 == 1:
			s.event(TWStatusMRSlaACK)
		default:
			s.event(TWStatusMTSlaACK)
		}
		return
	}
	s.written = append(s.written, b)
	s.event(TWStatusMTDataACK)
}

func (s *simTWIHardware) ReadByte() uint8 {
	return s.current
}

func (s *simTWIHardware) ReceiveACK() {
	s.current = s.readData[s.readPos]
	s.readPos++
	s.event(TWStatusMRDataACK)
}

func (s *simTWIHardware) ReceiveNACK() {
	s.current = s.readData[s.readPos]
	s.readPos++
	s.event(TWStatusMRDataNACK)
}

func TestI2CBusWriteRegister(t *testing.T) {
	sim := newSimTWIHardware()
	SetTWIHardware(sim)
	twi := NewTWI()
	sim.twi = twi
	bus := NewI2CBus(twi)

	if err := bus.WriteRegister(0x50, 0x10, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}

	want := []uint8{0x10, 0xAA, 0xBB}
	if len(sim.written) != len(want) {
		t.Fatalf("Expected %d written bytes, got %v", len(want), sim.written)
	}
	for i := range want {
		if sim.written[i] != want[i] {
			t.Errorf("Written byte %d: expected %#02x, got %#02x", i, want[i], sim.written[i])
		}
	}
	if !twi.Idle() {
		t.Error("Controller not idle after blocking write")
	}
}

func TestI2CBusReadRegister(t *testing.T) {
	sim := newSimTWIHardware()
	sim.readData = []uint8{0x01, 0x02, 0x03}
	SetTWIHardware(sim)
	twi := NewTWI()
	sim.twi = twi
	bus := NewI2CBus(twi)

	buf := make([]byte, 3)
	if err := bus.ReadRegister(0x68, 0x3B, buf); err != nil {
		t.Fatalf("ReadRegister failed: %v", err)
	}

	for i, want := range []byte{0x01, 0x02, 0x03} {
		if buf[i] != want {
			t.Errorf("buf[%d]: expected %#02x, got %#02x", i, want, buf[i])
		}
	}
	// SLA+W for the register phase, SLA+R after the repeated START.
	if len(sim.sla) != 2 || sim.sla[0] != 0xD0 || sim.sla[1] != 0xD1 {
		t.Errorf("Unexpected address bytes: %#v", sim.sla)
	}
}

func TestI2CBusTxShapes(t *testing.T) {
	sim := newSimTWIHardware()
	sim.readData = []uint8{0x55}
	SetTWIHardware(sim)
	twi := NewTWI()
	sim.twi = twi
	bus := NewI2CBus(twi)

	// Register read: w=[reg], r=buf
	buf := make([]byte, 1)
	if err := bus.Tx(0x50, []byte{0x20}, buf); err != nil {
		t.Errorf("Register read shape failed: %v", err)
	}
	if buf[0] != 0x55 {
		t.Errorf("Expected 0x55, got %#02x", buf[0])
	}

	// Register write: w=[reg, data...], r=nil
	sim.written = nil
	if err := bus.Tx(0x50, []byte{0x20, 0xDE, 0xAD}, nil); err != nil {
		t.Errorf("Register write shape failed: %v", err)
	}
	if len(sim.written) != 3 {
		t.Errorf("Expected 3 written bytes, got %v", sim.written)
	}

	// Unsupported shapes
	for _, tx := range []struct {
		w, r []byte
	}{
		{nil, make([]byte, 2)},               // plain read, no register
		{[]byte{0x20, 0x21}, make([]byte, 1)}, // multi-byte register + read
		{nil, nil},                           // empty transaction
	} {
		if err := bus.Tx(0x50, tx.w, tx.r); err != ErrUnsupportedTx {
			t.Errorf("Tx(%v, %v): expected ErrUnsupportedTx, got %v", tx.w, tx.r, err)
		}
	}
}

func TestI2CBusErrorMapping(t *testing.T) {
	sim := newSimTWIHardware()
	sim.ackAddress = false
	SetTWIHardware(sim)
	twi := NewTWI()
	sim.twi = twi
	bus := NewI2CBus(twi)

	if err := bus.WriteRegister(0x50, 0x10, []byte{0xAA}); err != ErrAddressNACK {
		t.Errorf("Expected ErrAddressNACK, got %v", err)
	}
	if !twi.Idle() {
		t.Error("Controller not idle after failed blocking write")
	}
}
