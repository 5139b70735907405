// Package rp1gpio is the RP1 GPIO bank 0 (GPIO0..27) of the Raspberry Pi 5:
// per-pin function select, pad overrides and status, on the same register
// engine as the UARTs.
package rp1gpio

import (
	"sync"

	"golang.org/x/exp/slices"

	"rp1-go/drivers/mmio"
	"rp1-go/errcode"
	"rp1-go/x/mathx"
)

// NumPins is the number of pins in bank 0.
const NumPins = 28

const (
	base   = 0x1F000D0000
	stride = 0x08
)

// Bases holds the address of each pin's STATUS/CTRL pair.
var Bases = func() []uintptr {
	b := make([]uintptr, NumPins)
	for i := range b {
		b[i] = base + uintptr(i)*stride
	}
	return b
}()

var (
	STATUS = mmio.Register{Name: "GPIO_STATUS", Offset: 0x00, BitWidth: 32, DataWidth: 32, Access: mmio.ReadOnly}
	CTRL   = mmio.Register{Name: "GPIO_CTRL", Offset: 0x04, BitWidth: 32, DataWidth: 32, Access: mmio.ReadWrite}
)

// CTRL fields.
const (
	funcSelPos  = 0
	funcSelLen  = 5
	outOverPos  = 12
	oeOverPos   = 14
	inOverPos   = 16
	overrideLen = 2

	// FuncSelNull is the FUNCSEL value that disconnects the pin.
	FuncSelNull = 0x1F

	// CTRL is written as 24 bits, a single 4-byte store. Bits 31:24 (IRQ
	// reset and override) are written as zero.
	ctrlWriteBits = 24
)

// Override forces a pad signal regardless of the selected peripheral.
type Override uint8

const (
	OverrideNone   Override = iota // drive from the peripheral
	OverrideInvert                 // drive from the inverse of the peripheral
	OverrideLow
	OverrideHigh
)

// Block is GPIO bank 0 behind one memory port. Pins routed through ClaimPin
// are recorded with their owner, the way a pin registry hands out pins to
// drivers.
type Block struct {
	bank *mmio.Bank

	mu     sync.Mutex
	owners map[int]string
}

// New returns the GPIO block at the RP1 addresses behind port.
func New(port mmio.Port) *Block {
	return &Block{bank: mmio.NewBank(port, Bases), owners: make(map[int]string)}
}

func (b *Block) Bank() *mmio.Bank { return b.bank }

// FuncSel returns the alt slot for fn on pin, or invalid_function when the
// pin cannot carry fn.
func FuncSel(pin int, fn Function) (uint8, error) {
	alts, ok := Alternatives(pin)
	if !ok {
		return 0, errcode.UnknownPin
	}
	if fn == FuncNone {
		return FuncSelNull, nil
	}
	i := slices.Index(alts[:], fn)
	if i < 0 {
		return 0, &errcode.E{C: errcode.InvalidFunction, Op: "rp1gpio.funcsel", Msg: fn.String()}
	}
	return uint8(i), nil
}

// SetFunction routes fn to pin by writing FUNCSEL. FuncNone disconnects the
// pin. The override fields are left as they are.
func (b *Block) SetFunction(pin int, fn Function) error {
	sel, err := FuncSel(pin, fn)
	if err != nil {
		return err
	}
	return b.updateCtrl(pin, funcSelPos, funcSelLen, uint64(sel))
}

// Function reports the function pin is routed to. A FUNCSEL value with no
// known function yields FuncNone.
func (b *Block) Function(pin int) (Function, error) {
	alts, ok := Alternatives(pin)
	if !ok {
		return FuncNone, errcode.UnknownPin
	}
	v, err := b.bank.Load(CTRL, pin)
	if err != nil {
		return FuncNone, err
	}
	sel := mathx.Field(v, funcSelPos, funcSelLen)
	if sel >= NumAlt {
		return FuncNone, nil
	}
	return alts[sel], nil
}

func (b *Block) SetOutputOverride(pin int, o Override) error {
	return b.setOverride(pin, outOverPos, o)
}

func (b *Block) SetOutputEnableOverride(pin int, o Override) error {
	return b.setOverride(pin, oeOverPos, o)
}

func (b *Block) SetInputOverride(pin int, o Override) error {
	return b.setOverride(pin, inOverPos, o)
}

func (b *Block) setOverride(pin int, pos uint, o Override) error {
	if o > OverrideHigh {
		return &errcode.E{C: errcode.InvalidParams, Op: "rp1gpio.override"}
	}
	if !mathx.InRange(pin, 0, NumPins-1) {
		return errcode.UnknownPin
	}
	return b.updateCtrl(pin, pos, overrideLen, uint64(o))
}

func (b *Block) updateCtrl(pin int, pos, n uint, v uint64) error {
	cur, err := b.bank.Load(CTRL, pin)
	if err != nil {
		return err
	}
	_, err = b.bank.Write(CTRL, pin, mathx.WithField(cur, pos, n, v), ctrlWriteBits)
	return err
}

// ClaimPin routes fn to pin on behalf of owner. A pin already claimed by
// someone else is refused with pin_in_use; claiming again as the same owner
// just re-routes it.
func (b *Block) ClaimPin(owner string, pin int, fn Function) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !mathx.InRange(pin, 0, NumPins-1) {
		return errcode.UnknownPin
	}
	if cur, inUse := b.owners[pin]; inUse && cur != owner {
		return &errcode.E{C: errcode.PinInUse, Op: "rp1gpio.claim", Msg: cur}
	}
	if err := b.SetFunction(pin, fn); err != nil {
		return err
	}
	b.owners[pin] = owner
	return nil
}

// ReleasePin disconnects pin if owner holds it. The claim is dropped only
// once the pin is disconnected.
func (b *Block) ReleasePin(owner string, pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cur, ok := b.owners[pin]; !ok || cur != owner {
		return nil
	}
	if err := b.SetFunction(pin, FuncNone); err != nil {
		return err
	}
	delete(b.owners, pin)
	return nil
}

// Owner returns who claimed pin, if anyone.
func (b *Block) Owner(pin int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.owners[pin]
	return o, ok
}
