package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"rp1-go/config"
	"rp1-go/drivers/mmio"
	"rp1-go/drivers/pl011"
	"rp1-go/drivers/pl011/pl011sim"
	"rp1-go/drivers/rp1gpio"
	"rp1-go/x/conv"
)

// session is one open view of the RP1 blocks: real hardware through
// /dev/mem, or the device model when no device path is given.
type session struct {
	out   io.Writer
	uarts *pl011.Block
	gpio  *rp1gpio.Block
	sim   *pl011sim.Sim // nil on hardware
	close func() error

	index int // UART addressed by read/write/dump/send
	uart  *pl011.UART
}

func newSession(devmem string, index int, out io.Writer) (*session, error) {
	s := &session{out: out, index: index, close: func() error { return nil }}
	var port mmio.Port
	if devmem == "" {
		s.sim = pl011sim.New()
		port = s.sim
	} else {
		p, closer, err := openDevMem(devmem)
		if err != nil {
			return nil, err
		}
		port, s.close = p, closer
	}
	s.uarts = pl011.NewBlock(port)
	s.gpio = rp1gpio.New(port)
	return s, nil
}

func (s *session) Close() error { return s.close() }

// bringUp muxes the profile's pins and runs the UART bring-up.
func (s *session) bringUp(p *config.Profile) error {
	pins, err := p.PinFunctions()
	if err != nil {
		return err
	}
	c, err := p.UARTConfig()
	if err != nil {
		return err
	}
	owner := "uart" + strconv.Itoa(c.Index())
	for _, pf := range pins {
		if err := s.gpio.ClaimPin(owner, pf.Pin, pf.Function); err != nil {
			return fmt.Errorf("gpio%d: %w", pf.Pin, err)
		}
		fmt.Fprintf(s.out, "gpio%d -> %s\n", pf.Pin, pf.Function)
	}
	s.uarts.OnState(func(i int, st pl011.State) {
		fmt.Fprintf(s.out, "uart%d: %s\n", i, st)
	})
	defer s.uarts.OnState(nil)
	// Never wait longer than it takes to drain both FIFOs.
	s.uarts.SetWaiter(pl011.Deadline{Timeout: 64*c.FrameTime() + 10*time.Millisecond})
	u, err := c.Build(s.uarts)
	if err != nil {
		return err
	}
	s.uart, s.index = u, u.Index()
	return nil
}

func (s *session) read(name string) (uint64, error) {
	r, ok := pl011.RegisterByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown register %q", name)
	}
	v, err := s.uarts.Bank().Load(r, s.index)
	if err != nil {
		return 0, err
	}
	s.printReg(r, v)
	return v, nil
}

func (s *session) write(name, value string) error {
	r, ok := pl011.RegisterByName(name)
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	v, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return fmt.Errorf("value %q: %w", value, err)
	}
	return s.uarts.Bank().Store(r, s.index, v)
}

// dump prints every readable register. DR is skipped: reading it pops the
// receive FIFO.
func (s *session) dump() error {
	for _, r := range pl011.Registers {
		if !r.Readable() || r.Name == pl011.DR.Name {
			continue
		}
		v, err := s.uarts.Bank().Load(r, s.index)
		if err != nil {
			return err
		}
		s.printReg(r, v)
	}
	return nil
}

func (s *session) send(text string) error {
	if s.uart == nil {
		return fmt.Errorf("uart%d not brought up", s.index)
	}
	_, err := s.uart.PollWrite([]byte(text))
	return err
}

func (s *session) flags() (pl011.Flags, error) {
	return s.uarts.ReadFlags(s.index)
}

func (s *session) printReg(r mmio.Register, v uint64) {
	var buf, dec [20]byte
	hex := conv.Hex(buf[:], v, conv.HexDigits(uint(r.BitWidth)))
	line := fmt.Sprintf("uart%d %-6s 0x%s", s.index, r.Name, hex)
	switch r.Name {
	case pl011.FR.Name:
		line += "  " + pl011.DecodeFlags(v).String()
	case pl011.IBRD.Name, pl011.FBRD.Name:
		line += " (" + string(conv.Dec(dec[:], v, 0)) + ")"
	}
	fmt.Fprintln(s.out, strings.TrimRight(line, " "))
}
