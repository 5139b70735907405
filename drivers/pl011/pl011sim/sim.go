// Package pl011sim is a behavioural model of the RP1 UART block on top of
// mmio.Memory. It is good enough to drive the bring-up sequence and polled
// I/O on a host: transmitted bytes are captured, FR is derived from a small
// FIFO model and received bytes can be injected.
package pl011sim

import (
	"rp1-go/drivers/mmio"
	"rp1-go/drivers/pl011"
)

const (
	fifoDepth = 32
	crMask    = 0xFFFF
)

type uart struct {
	sent    []byte
	pending int // bytes accepted but not yet shifted out
	rx      []byte
	busy    int // extra FR reads that report BUSY
	txLimit int // len(sent) at which the transmitter stalls; -1 never
	stuckLo uint64
	stuckHi uint64
}

// Sim is an mmio.Port serving the six RP1 UARTs. Addresses outside the UART
// registers behave as plain memory.
type Sim struct {
	*mmio.Memory
	bases []uintptr
	uarts []*uart
}

// New returns a model with every UART at its reset state (all registers 0).
func New() *Sim { return NewAt(mmio.NewMemory(), pl011.Bases) }

// NewAt installs the model for bases on mem. Other hooks on mem are left alone
// so one Memory can also carry other device models.
func NewAt(mem *mmio.Memory, bases []uintptr) *Sim {
	s := &Sim{Memory: mem, bases: bases}
	for i, base := range bases {
		u := &uart{txLimit: -1}
		s.uarts = append(s.uarts, u)
		s.install(i, base, u)
	}
	return s
}

func (s *Sim) install(i int, base uintptr, u *uart) {
	s.HookWrite(base+pl011.DR.Offset, func(_ int, v uint64) uint64 {
		if s.lcr(i)&pl011.LCRFIFOEnable == 0 && u.pending > 0 || u.pending >= fifoDepth {
			return v // overrun, dropped
		}
		u.sent = append(u.sent, byte(v))
		u.pending++
		return v
	})
	s.HookRead(base+pl011.DR.Offset, func(_ int, _ uint64) uint64 {
		if len(u.rx) == 0 {
			return 0
		}
		c := u.rx[0]
		u.rx = u.rx[1:]
		return uint64(c)
	})
	s.HookRead(base+pl011.FR.Offset, func(_ int, _ uint64) uint64 {
		return s.flags(i, u)
	})
	s.HookWrite(base+pl011.CR.Offset, func(_ int, v uint64) uint64 {
		return (v | u.stuckHi) &^ u.stuckLo & crMask
	})
}

func (s *Sim) lcr(i int) uint64 {
	return s.Peek(s.bases[i]+pl011.LCRH.Offset, 1)
}

// flags computes FR and advances the transmitter by one character, so a
// caller polling FR always makes progress.
func (s *Sim) flags(i int, u *uart) uint64 {
	depth := 1
	if s.lcr(i)&pl011.LCRFIFOEnable != 0 {
		depth = fifoDepth
	}
	var f pl011.Flags
	stalled := u.txLimit >= 0 && len(u.sent) >= u.txLimit
	if u.pending >= depth || stalled {
		f |= pl011.FlagTXFF
	}
	if u.pending > 0 || u.busy > 0 || stalled {
		f |= pl011.FlagBusy
	}
	if u.pending == 0 && !stalled {
		f |= pl011.FlagTXFE
	}
	if len(u.rx) == 0 {
		f |= pl011.FlagRXFE
	}
	if len(u.rx) >= depth {
		f |= pl011.FlagRXFF
	}
	f |= pl011.FlagCTS

	if u.busy > 0 {
		u.busy--
	}
	if u.pending > 0 && !stalled {
		u.pending--
	}
	return uint64(f)
}

// Sent returns every byte written to DR of UART index.
func (s *Sim) Sent(index int) []byte { return s.uarts[index].sent }

// Inject queues bytes for UART index to receive.
func (s *Sim) Inject(index int, p ...byte) {
	u := s.uarts[index]
	u.rx = append(u.rx, p...)
}

// HoldBusy makes the next n FR reads of UART index report BUSY.
func (s *Sim) HoldBusy(index, n int) { s.uarts[index].busy = n }

// StallTx lets UART index accept n more bytes and then reports TXFF until
// StallTx is called again. A negative n removes the stall.
func (s *Sim) StallTx(index, n int) {
	u := s.uarts[index]
	if n < 0 {
		u.txLimit = -1
		return
	}
	u.txLimit = len(u.sent) + n
}

// StickCR pins CR bits of UART index: bits in hi always read back set, bits
// in lo always read back clear, whatever is written.
func (s *Sim) StickCR(index int, hi, lo uint64) {
	u := s.uarts[index]
	u.stuckHi, u.stuckLo = hi, lo
}

// Register returns the stored value of r on UART index without side effects.
func (s *Sim) Register(r mmio.Register, index int) uint64 {
	size := 2
	if r.BitWidth <= 8 {
		size = 1
	}
	return s.Peek(s.bases[index]+r.Offset, size)
}

// PowerOn forces UART index into the running state as firmware left it:
// UARTEN, TXE and RXE set.
func (s *Sim) PowerOn(index int) {
	s.Poke(s.bases[index]+pl011.CR.Offset, 2, pl011.CREnable|pl011.CRTxEnable|pl011.CRRxEnable)
}
