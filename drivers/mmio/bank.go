package mmio

import (
	"rp1-go/errcode"
	"rp1-go/x/mathx"
)

// Bank is the peripheral instance table for one kind of peripheral block
// (every UART, every GPIO pin, ...) bound to the Port that reaches it.
// Register addresses are resolved per access and never cached.
type Bank struct {
	port  Port
	bases []uintptr
}

// NewBank returns a bank over port. bases[i] is the physical base address of
// instance i.
func NewBank(port Port, bases []uintptr) *Bank {
	return &Bank{port: port, bases: bases}
}

// Len returns the number of instances in the table.
func (b *Bank) Len() int { return len(b.bases) }

// Port returns the underlying memory port.
func (b *Bank) Port() Port { return b.port }

// Resolve returns the base address of instance index.
func (b *Bank) Resolve(index int) (uintptr, error) {
	if index < 0 || index >= len(b.bases) {
		return 0, errcode.InvalidIndex
	}
	return b.bases[index], nil
}

// Address returns the physical address of r on instance index.
func (b *Bank) Address(r Register, index int) (uintptr, error) {
	base, err := b.Resolve(index)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidIndex, Op: r.Name}
	}
	return base + r.Offset, nil
}

// Write stores the low bits of value into r on instance index and returns the
// number of bytes the value occupies (ceil(bits/8)). Higher bits of value are
// discarded. The transfer is one access of 1, 2, 4 or 8 bytes: a 3-byte value
// goes out as a 4-byte store and a 4-byte value as an 8-byte store. Values
// wider than 4 bytes cannot be written. bits == 0 transfers nothing.
func (b *Bank) Write(r Register, index int, value uint64, bits uint) (int, error) {
	if r.Access == ReadOnly {
		return 0, &errcode.E{C: errcode.AccessDenied, Op: r.Name, Msg: "register is read-only"}
	}
	if bits > uint(r.BitWidth) {
		return 0, &errcode.E{C: errcode.WidthOverflow, Op: r.Name}
	}
	addr, err := b.Address(r, index)
	if err != nil {
		return 0, err
	}
	n := mathx.CeilDiv(bits, 8)
	if n == 0 {
		return 0, nil
	}
	size := writeSize(n)
	if size == 0 {
		return 0, &errcode.E{C: errcode.UnsupportedRegisterSize, Op: r.Name}
	}
	b.port.WriteRaw(addr, size, value&mathx.LowMask[uint64](bits))
	return int(n), nil
}

// Read loads r on instance index and returns its low bits. The transfer is
// one access of ceil(bits/8) bytes, which must be 1, 2, 4 or 8.
// bits == 0 transfers nothing and yields 0.
func (b *Bank) Read(r Register, index int, bits uint) (uint64, error) {
	if r.Access == WriteOnly {
		return 0, &errcode.E{C: errcode.AccessDenied, Op: r.Name, Msg: "register is write-only"}
	}
	if bits > uint(r.BitWidth) {
		return 0, &errcode.E{C: errcode.WidthOverflow, Op: r.Name}
	}
	addr, err := b.Address(r, index)
	if err != nil {
		return 0, err
	}
	n := mathx.CeilDiv(bits, 8)
	if n == 0 {
		return 0, nil
	}
	size := readSize(n)
	if size == 0 {
		return 0, &errcode.E{C: errcode.UnsupportedRegisterSize, Op: r.Name}
	}
	return b.port.ReadRaw(addr, size) & mathx.LowMask[uint64](bits), nil
}

// Load reads the full width of r.
func (b *Bank) Load(r Register, index int) (uint64, error) {
	return b.Read(r, index, uint(r.BitWidth))
}

// Store writes the full width of r.
func (b *Bank) Store(r Register, index int, value uint64) error {
	_, err := b.Write(r, index, value, uint(r.BitWidth))
	return err
}

// Modify is a read-modify-write of the low bits of r: (current | set) &^ clear.
func (b *Bank) Modify(r Register, index int, bits uint, set, clear uint64) error {
	cur, err := b.Read(r, index, bits)
	if err != nil {
		return err
	}
	_, err = b.Write(r, index, (cur|set)&^clear, bits)
	return err
}

func writeSize(n uint) int {
	switch n {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	case 4:
		return 8
	}
	return 0
}

func readSize(n uint) int {
	switch n {
	case 1, 2, 4, 8:
		return int(n)
	}
	return 0
}
