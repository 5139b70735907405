// Package config loads board profiles: which UART to bring up, with which
// line settings, and how the pins are muxed. Profiles are YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"rp1-go/drivers/pl011"
	"rp1-go/drivers/rp1gpio"
	"rp1-go/errcode"
	"rp1-go/x/mathx"
)

// Profile is one board profile.
type Profile struct {
	Board string      `yaml:"board"`
	UART  UART        `yaml:"uart"`
	Pins  []PinConfig `yaml:"pins"`
}

// UART mirrors the pl011.Config builder. Omitted fields take the builder
// defaults; an omitted index stays invalid so Build refuses it.
type UART struct {
	Index       *int    `yaml:"index"`
	Baud        *uint32 `yaml:"baud"`
	WordLength  int     `yaml:"word_length"`
	Parity      string  `yaml:"parity"`
	StickParity bool    `yaml:"stick_parity"`
	StopBits    int     `yaml:"stop_bits"`
	FIFO        bool    `yaml:"fifo"`
	Mode        string  `yaml:"mode"`
}

type PinConfig struct {
	Pin      int    `yaml:"pin"`
	Function string `yaml:"function"`
}

// PinFunction is a validated pin mux entry.
type PinFunction struct {
	Pin      int
	Function rp1gpio.Function
}

// Load decodes one profile from r. Unknown keys are rejected.
func Load(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("empty profile", nil)
		}
		return nil, invalid("decode", err)
	}
	return &p, nil
}

// Parse is Load over a byte slice.
func Parse(b []byte) (*Profile, error) { return Load(bytes.NewReader(b)) }

// UARTConfig converts the uart section into a builder value.
func (p *Profile) UARTConfig() (pl011.Config, error) {
	u := p.UART
	c := pl011.Default()
	if u.Index != nil {
		c = c.WithIndex(*u.Index)
	}
	if u.Baud != nil {
		c = c.WithBaudRate(*u.Baud)
	}
	if u.WordLength != 0 {
		if !mathx.InRange(u.WordLength, int(pl011.WordLength5), int(pl011.WordLength8)) {
			return c, invalid(fmt.Sprintf("uart.word_length: %d is not 5..8", u.WordLength), nil)
		}
		c = c.WithWordLength(pl011.WordLength(u.WordLength))
	}
	switch strings.ToLower(u.Parity) {
	case "", "none":
	case "even":
		c = c.WithParity(pl011.ParityEven)
	case "odd":
		c = c.WithParity(pl011.ParityOdd)
	default:
		return c, invalid("uart.parity: unknown value "+u.Parity, nil)
	}
	if u.StickParity {
		c = c.WithStickParity()
	}
	if u.StopBits != 0 {
		if !mathx.InRange(u.StopBits, int(pl011.StopBitsOne), int(pl011.StopBitsTwo)) {
			return c, invalid(fmt.Sprintf("uart.stop_bits: %d is not 1 or 2", u.StopBits), nil)
		}
		c = c.WithStopBits(pl011.StopBits(u.StopBits))
	}
	if u.FIFO {
		c = c.WithFIFO()
	}
	switch strings.ToLower(u.Mode) {
	case "", "bidirectional":
	case "tx":
		c = c.WithTransmitMode(pl011.TxOnly)
	case "rx":
		c = c.WithTransmitMode(pl011.RxOnly)
	default:
		return c, invalid("uart.mode: unknown value "+u.Mode, nil)
	}
	if err := c.Validate(); err != nil {
		return c, invalid("uart", err)
	}
	return c, nil
}

// PinFunctions resolves the pins section against the GPIO function table.
func (p *Profile) PinFunctions() ([]PinFunction, error) {
	out := make([]PinFunction, 0, len(p.Pins))
	seen := make(map[int]bool, len(p.Pins))
	for i, pc := range p.Pins {
		fn, ok := rp1gpio.ParseFunction(strings.ToLower(pc.Function))
		if !ok {
			return nil, invalid(fmt.Sprintf("pins[%d]: unknown function %q", i, pc.Function), nil)
		}
		if _, err := rp1gpio.FuncSel(pc.Pin, fn); err != nil {
			return nil, invalid(fmt.Sprintf("pins[%d]", i), err)
		}
		if seen[pc.Pin] {
			return nil, invalid(fmt.Sprintf("pins[%d]: pin %d listed twice", i, pc.Pin), nil)
		}
		seen[pc.Pin] = true
		out = append(out, PinFunction{Pin: pc.Pin, Function: fn})
	}
	return out, nil
}

func invalid(msg string, err error) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: msg, Err: err}
}
