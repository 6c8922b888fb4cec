package board

import (
	"io"
	"strings"
	"testing"
	"time"
)

// pipePort is a mock serial.Port backed by in-memory pipes. The test
// plays the role of the board on the far ends.
type pipePort struct {
	rx *io.PipeReader // board -> host
	tx *io.PipeWriter // host -> board
}

func (p *pipePort) Read(b []byte) (int, error)  { return p.rx.Read(b) }
func (p *pipePort) Write(b []byte) (int, error) { return p.tx.Write(b) }

func (p *pipePort) Close() error {
	p.rx.Close()
	p.tx.Close()
	return nil
}

func newPipePort() (*pipePort, *io.PipeWriter, *io.PipeReader) {
	boardOut, hostIn := io.Pipe()
	hostOut, boardIn := io.Pipe()
	return &pipePort{rx: boardOut, tx: boardIn}, hostIn, hostOut
}

func TestBoardSendAndResponse(t *testing.T) {
	port, boardTx, boardRx := newPipePort()
	b := New(port)
	defer b.Close()

	// Fake board: echo an ok line for each received command line.
	go func() {
		buf := make([]byte, 64)
		n, err := boardRx.Read(buf)
		if err != nil {
			return
		}
		if string(buf[:n]) != "status\n" {
			boardTx.Write([]byte("err unknown command\r\n"))
			return
		}
		boardTx.Write([]byte("ok result=ok code=0xf8\r\n"))
	}()

	if err := b.Send("status"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	line, err := b.WaitResponse(time.Second)
	if err != nil {
		t.Fatalf("WaitResponse failed: %v", err)
	}
	if !strings.HasPrefix(line, "ok result=") {
		t.Errorf("Unexpected response: %q", line)
	}
}

func TestBoardCommandFormatting(t *testing.T) {
	port, _, boardRx := newPipePort()
	b := New(port)
	defer b.Close()

	received := make(chan string, 3)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := boardRx.Read(buf)
			if err != nil {
				return
			}
			for _, line := range strings.Split(strings.TrimSpace(string(buf[:n])), "\n") {
				received <- line
			}
		}
	}()

	if err := b.SetPin(5, true); err != nil {
		t.Fatalf("SetPin failed: %v", err)
	}
	if err := b.WriteRegister(0x50, 0x10, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}
	if err := b.ReadRegister(0x68, 0x3B, 6); err != nil {
		t.Fatalf("ReadRegister failed: %v", err)
	}

	want := []string{
		"pin 5 1",
		"i2cw 0x50 0x10 0xaa 0xbb",
		"i2cr 0x68 0x3b 6",
	}
	for _, w := range want {
		select {
		case got := <-received:
			if got != w {
				t.Errorf("Expected %q, got %q", w, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for %q", w)
		}
	}
}

func TestBoardWaitResponseTimeout(t *testing.T) {
	port, _, _ := newPipePort()
	b := New(port)
	defer b.Close()

	if _, err := b.WaitResponse(10 * time.Millisecond); err == nil {
		t.Error("Expected timeout error")
	}
}
