package pl011

import (
	"tinygo.org/x/drivers"

	"rp1-go/errcode"
)

// UART is a running PL011 instance returned by Config.Build. All I/O is
// polled; no interrupts or DMA are configured.
type UART struct {
	blk   *Block
	index int
}

var _ drivers.UART = (*UART)(nil)

// Index returns the instance number (0..5).
func (u *UART) Index() int { return u.index }

// ReadFlags reads FR once.
func (u *UART) ReadFlags() (Flags, error) { return u.blk.ReadFlags(u.index) }

// Flags is ReadFlags for callers that already hold a running UART, where a
// failing FR read means the handle itself is broken.
func (u *UART) Flags() Flags {
	f, err := u.ReadFlags()
	if err != nil {
		panic(err)
	}
	return f
}

// PollWrite sends p one byte at a time, waiting for room in the transmit
// FIFO before each byte. It returns once the last byte is handed to the
// UART, not when it has left the wire, and reports how many bytes were
// handed over before the first error. An empty p performs no access.
func (u *UART) PollWrite(p []byte) (int, error) {
	for i, c := range p {
		if err := u.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteByte waits for TXFF to clear and writes c to DR.
func (u *UART) WriteByte(c byte) error {
	err := u.blk.wait.Until(func() (bool, error) {
		f, err := u.ReadFlags()
		return !f.TransmitFIFOFull(), err
	})
	if err != nil {
		return errcode.Wrap("pl011.write", err)
	}
	if _, err := u.blk.bank.Write(DR, u.index, uint64(c), 8); err != nil {
		return errcode.Wrap("pl011.write", err)
	}
	return nil
}

// Write implements io.Writer.
func (u *UART) Write(p []byte) (int, error) { return u.PollWrite(p) }

// PollRead blocks until the receive FIFO holds a character and returns it.
func (u *UART) PollRead() (byte, error) {
	err := u.blk.wait.Until(func() (bool, error) {
		f, err := u.ReadFlags()
		return !f.ReceiveFIFOEmpty(), err
	})
	if err != nil {
		return 0, errcode.Wrap("pl011.read", err)
	}
	return u.readDR()
}

// Read drains whatever is in the receive FIFO into p without blocking, like
// machine.UART. It returns 0, nil when nothing is pending.
func (u *UART) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		f, err := u.ReadFlags()
		if err != nil {
			return n, errcode.Wrap("pl011.read", err)
		}
		if f.ReceiveFIFOEmpty() {
			break
		}
		c, err := u.readDR()
		if err != nil {
			return n, err
		}
		p[n] = c
		n++
	}
	return n, nil
}

// Buffered reports 1 when at least one character is waiting and 0 otherwise;
// FR does not expose the FIFO fill level.
func (u *UART) Buffered() int {
	f, err := u.ReadFlags()
	if err != nil || f.ReceiveFIFOEmpty() {
		return 0
	}
	return 1
}

func (u *UART) readDR() (byte, error) {
	v, err := u.blk.bank.Read(DR, u.index, 8)
	if err != nil {
		return 0, errcode.Wrap("pl011.read", err)
	}
	return byte(v), nil
}

// ReceiveStatus reads RSR, the error status of the last character read.
func (u *UART) ReceiveStatus() (uint8, error) {
	v, err := u.blk.bank.Load(RSR, u.index)
	return uint8(v), err
}

// ClearErrors writes ECR, clearing framing, parity, break and overrun.
func (u *UART) ClearErrors() error {
	return u.blk.bank.Store(ECR, u.index, 0)
}
