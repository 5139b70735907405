package config

import (
	"errors"
	"strings"
	"testing"

	"rp1-go/drivers/pl011"
	"rp1-go/drivers/rp1gpio"
	"rp1-go/errcode"
)

func TestEmbeddedRPi5(t *testing.T) {
	p, err := Embedded("rpi5")
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.UARTConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c != pl011.New(0) {
		t.Fatalf("uart config %+v, want New(0)", c)
	}
	pins, err := p.PinFunctions()
	if err != nil {
		t.Fatal(err)
	}
	want := []PinFunction{{14, rp1gpio.Uart0Tx}, {15, rp1gpio.Uart0Rx}}
	if len(pins) != len(want) || pins[0] != want[0] || pins[1] != want[1] {
		t.Fatalf("pins %+v", pins)
	}
}

func TestEmbeddedProfilesAllValid(t *testing.T) {
	for _, name := range Boards() {
		t.Run(name, func(t *testing.T) {
			p, err := Embedded(name)
			if err != nil {
				t.Fatal(err)
			}
			if p.Board != name {
				t.Fatalf("board %q", p.Board)
			}
			if _, err := p.UARTConfig(); err != nil {
				t.Fatal(err)
			}
			if _, err := p.PinFunctions(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestEmbeddedLookupOverride(t *testing.T) {
	oldLookup, oldBoards := EmbeddedLookup, EmbeddedBoards
	EmbeddedLookup = func(board string) ([]byte, bool) {
		if board != "bench" {
			return nil, false
		}
		return []byte("uart: {index: 3, baud: 57600, parity: odd, stop_bits: 2, word_length: 7, mode: rx}\n"), true
	}
	EmbeddedBoards = func() []string { return []string{"bench"} }
	t.Cleanup(func() { EmbeddedLookup, EmbeddedBoards = oldLookup, oldBoards })

	if got := Boards(); len(got) != 1 || got[0] != "bench" {
		t.Fatalf("boards %q", got)
	}

	p, err := Embedded("bench")
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.UARTConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := pl011.New(3).WithBaudRate(57600).WithParity(pl011.ParityOdd).
		WithStopBits(pl011.StopBitsTwo).WithWordLength(pl011.WordLength7).WithTransmitMode(pl011.RxOnly)
	if c != want {
		t.Fatalf("got %+v want %+v", c, want)
	}

	if _, err := Embedded("rpi5"); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err=%v", err)
	}
}

func TestBoardsFollowLookup(t *testing.T) {
	if got := Boards(); len(got) != 2 || got[0] != "rpi5" || got[1] != "rpi5-uart1" {
		t.Fatalf("boards %q", got)
	}
	old := EmbeddedLookup
	EmbeddedLookup = func(board string) ([]byte, bool) {
		if board == "rpi5" {
			return nil, false
		}
		return old(board)
	}
	t.Cleanup(func() { EmbeddedLookup = old })
	if got := Boards(); len(got) != 1 || got[0] != "rpi5-uart1" {
		t.Fatalf("boards %q", got)
	}
}

func TestOmittedIndexStaysInvalid(t *testing.T) {
	p, err := Parse([]byte("uart: {baud: 9600}\n"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.UARTConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.Index() != pl011.Default().Index() || c.BaudRate() != 9600 {
		t.Fatalf("%+v", c)
	}
}

func TestExplicitZeroBaudIsKept(t *testing.T) {
	p, err := Parse([]byte("uart: {index: 0, baud: 0}\n"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.UARTConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.BaudRate() != 0 {
		t.Fatalf("baud %d", c.BaudRate())
	}
}

func TestInvalidProfiles(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"unknown key":   "uart: {index: 0, speed: 9600}\n",
		"bad yaml":      "uart: [\n",
		"parity":        "uart: {index: 0, parity: mark}\n",
		"mode":          "uart: {index: 0, mode: half}\n",
		"word length":   "uart: {index: 0, word_length: 9}\n",
		"stop bits":     "uart: {index: 0, stop_bits: 3}\n",
		"wide word":     "uart: {index: 0, word_length: 264}\n",
		"wide stop":     "uart: {index: 0, stop_bits: 257}\n",
		"negative word": "uart: {index: 0, word_length: -8}\n",
		"function":      "pins: [{pin: 14, function: uart7_tx}]\n",
		"wrong pin":     "pins: [{pin: 14, function: uart0_rx}]\n",
		"pin range":     "pins: [{pin: 40, function: uart0_rx}]\n",
		"duplicate pin": "pins: [{pin: 14, function: uart0_tx}, {pin: 14, function: uart0_tx}]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := Parse([]byte(src))
			if err == nil {
				_, err = p.UARTConfig()
			}
			if err == nil {
				_, err = p.PinFunctions()
			}
			if errcode.Of(err) != errcode.InvalidParams {
				t.Fatalf("err=%v", err)
			}
			var e *errcode.E
			if !errors.As(err, &e) || e.Op != "config" {
				t.Fatalf("err=%#v", err)
			}
		})
	}
}

func TestErrorMentionsField(t *testing.T) {
	cases := map[string]string{
		"uart: {index: 0, parity: mark}\n":     "uart.parity",
		"uart: {index: 0, word_length: 264}\n": "uart.word_length: 264",
		"uart: {index: 0, stop_bits: 257}\n":   "uart.stop_bits: 257",
	}
	for src, field := range cases {
		p, err := Parse([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.UARTConfig(); err == nil || !strings.Contains(err.Error(), field) {
			t.Fatalf("%q: err=%v", src, err)
		}
	}
}
