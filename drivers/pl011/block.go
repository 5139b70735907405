package pl011

import "rp1-go/drivers/mmio"

// Block is the set of RP1 UARTs reachable through one memory port. It keeps
// track of which instances have a running UART so a second bring-up of the
// same instance is refused instead of reprogramming it under its owner.
//
// A Block is meant for a single execution context; it does no locking.
type Block struct {
	bank    *mmio.Bank
	clockHz uint32
	wait    Waiter
	running []bool
	onState func(index int, s State)
}

// NewBlock returns the UART block at the RP1 addresses behind port.
func NewBlock(port mmio.Port) *Block {
	return NewBlockAt(port, Bases)
}

// NewBlockAt returns a UART block with a custom instance table.
func NewBlockAt(port mmio.Port, bases []uintptr) *Block {
	return &Block{
		bank:    mmio.NewBank(port, bases),
		clockHz: ClockHz,
		wait:    Spin{},
		running: make([]bool, len(bases)),
	}
}

// Bank exposes the register engine for direct register access.
func (b *Block) Bank() *mmio.Bank { return b.bank }

// SetWaiter replaces the busy-wait policy (Spin by default).
func (b *Block) SetWaiter(w Waiter) {
	if w == nil {
		w = Spin{}
	}
	b.wait = w
}

// OnState registers fn to observe bring-up state transitions.
func (b *Block) OnState(fn func(index int, s State)) { b.onState = fn }

func (b *Block) claimed(index int) bool {
	return index >= 0 && index < len(b.running) && b.running[index]
}

func (b *Block) claim(index int) { b.running[index] = true }

// ReadFlags reads and decodes FR of UART index, running or not.
func (b *Block) ReadFlags(index int) (Flags, error) {
	raw, err := b.bank.Load(FR, index)
	if err != nil {
		return 0, err
	}
	return DecodeFlags(raw), nil
}
