package pl011

import (
	"time"

	"rp1-go/errcode"
	"rp1-go/x/timex"
)

// WordLength is the number of data bits per character.
type WordLength uint8

const (
	WordLength5 WordLength = 5
	WordLength6 WordLength = 6
	WordLength7 WordLength = 7
	WordLength8 WordLength = 8
)

// Parity selects the parity bit. ParityNone disables it.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

type StopBits uint8

const (
	StopBitsOne StopBits = 1
	StopBitsTwo StopBits = 2
)

// TransmitMode selects which directions are enabled in CR.
type TransmitMode uint8

const (
	Bidirectional TransmitMode = iota
	TxOnly
	RxOnly
)

func (m TransmitMode) String() string {
	switch m {
	case TxOnly:
		return "tx"
	case RxOnly:
		return "rx"
	default:
		return "bidirectional"
	}
}

// Config describes one UART bring-up. It is an immutable value: every With
// method returns a modified copy. The instance index of Default is out of
// range on purpose, so a Config that never had an index chosen cannot
// silently program UART0.
type Config struct {
	index       int
	baud        uint32
	wordLength  WordLength
	parity      Parity
	stickParity bool
	stopBits    StopBits
	fifo        bool
	mode        TransmitMode
}

// Default returns 115200 baud, 8 data bits, no parity, one stop bit, FIFOs
// off, both directions, and an invalid instance index.
func Default() Config {
	return Config{
		index:      NumInstances + 1,
		baud:       115200,
		wordLength: WordLength8,
		parity:     ParityNone,
		stopBits:   StopBitsOne,
		mode:       Bidirectional,
	}
}

// New returns Default with the instance index set.
func New(index int) Config { return Default().WithIndex(index) }

func (c Config) WithIndex(index int) Config             { c.index = index; return c }
func (c Config) WithBaudRate(baud uint32) Config        { c.baud = baud; return c }
func (c Config) WithWordLength(w WordLength) Config     { c.wordLength = w; return c }
func (c Config) WithParity(p Parity) Config             { c.parity = p; return c }
func (c Config) WithoutParity() Config                  { c.parity = ParityNone; return c }
func (c Config) WithStickParity() Config                { c.stickParity = true; return c }
func (c Config) WithStopBits(s StopBits) Config         { c.stopBits = s; return c }
func (c Config) WithFIFO() Config                       { c.fifo = true; return c }
func (c Config) WithoutFIFO() Config                    { c.fifo = false; return c }
func (c Config) WithTransmitMode(m TransmitMode) Config { c.mode = m; return c }

func (c Config) Index() int                 { return c.index }
func (c Config) BaudRate() uint32           { return c.baud }
func (c Config) WordLength() WordLength     { return c.wordLength }
func (c Config) Parity() Parity             { return c.parity }
func (c Config) StickParity() bool          { return c.stickParity }
func (c Config) StopBits() StopBits         { return c.stopBits }
func (c Config) FIFO() bool                 { return c.fifo }
func (c Config) TransmitMode() TransmitMode { return c.mode }

// FrameBits is the length of one character on the wire: start bit, data
// bits, optional parity bit and stop bits.
func (c Config) FrameBits() uint32 {
	n := 1 + uint32(c.wordLength) + uint32(c.stopBits)
	if c.parity != ParityNone {
		n++
	}
	return n
}

// FrameTime is how long one character occupies the line at the configured
// baud rate. A zero baud rate is treated as 1 baud.
func (c Config) FrameTime() time.Duration {
	return timex.Periods(c.baud, c.FrameBits())
}

// Validate rejects enum values outside their documented sets. The instance
// index and the baud rate are checked during bring-up.
func (c Config) Validate() error {
	switch {
	case c.wordLength < WordLength5 || c.wordLength > WordLength8:
		return &errcode.E{C: errcode.InvalidParams, Op: "pl011.config", Msg: "word length must be 5..8"}
	case c.parity > ParityOdd:
		return &errcode.E{C: errcode.InvalidParams, Op: "pl011.config", Msg: "unknown parity"}
	case c.stopBits != StopBitsOne && c.stopBits != StopBitsTwo:
		return &errcode.E{C: errcode.InvalidParams, Op: "pl011.config", Msg: "stop bits must be 1 or 2"}
	case c.mode > RxOnly:
		return &errcode.E{C: errcode.InvalidParams, Op: "pl011.config", Msg: "unknown transmit mode"}
	}
	return nil
}

// Build runs the bring-up sequence for c on b and returns the running UART.
// It fails with already_enabled, before touching any register, when b already
// handed out a UART for the same instance.
func (c Config) Build(b *Block) (*UART, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if b.claimed(c.index) {
		return nil, &errcode.E{C: errcode.AlreadyEnabled, Op: "pl011.build", Msg: "instance already running"}
	}
	u, err := b.bringUp(c)
	if err != nil {
		return nil, err
	}
	b.claim(c.index)
	return u, nil
}
