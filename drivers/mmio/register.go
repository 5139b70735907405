// Package mmio is the single choke point for memory-mapped register access.
//
// A Register describes one hardware register (offset, width, access mode).
// A Bank binds a set of peripheral instance base addresses to a Port and
// performs bounds-checked, access-checked, width-masked transfers. Ports
// supply the actual memory: volatile pointers on TinyGo, /dev/mem on Linux,
// or an in-memory map for tests.
package mmio

// Access is the access mode of a register as given by the hardware manual.
type Access uint8

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "RO"
	case WriteOnly:
		return "WO"
	default:
		return "RW"
	}
}

// Register is an immutable register descriptor.
type Register struct {
	Name   string
	Offset uintptr // byte offset from the instance base
	// BitWidth counts every implemented bit, data and control.
	BitWidth uint8
	// DataWidth counts the bits carrying data; 0 for control-only registers.
	DataWidth uint8
	Access    Access
}

// Readable reports whether the register may be read.
func (r Register) Readable() bool { return r.Access != WriteOnly }

// Writable reports whether the register may be written.
func (r Register) Writable() bool { return r.Access != ReadOnly }
