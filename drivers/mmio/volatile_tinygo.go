//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile is the hardware Port: every transfer is a single volatile load or
// store of the requested size at the physical address.
type Volatile struct{}

//go:inline
func (Volatile) ReadRaw(addr uintptr, size int) uint64 {
	p := unsafe.Pointer(addr)
	switch size {
	case 1:
		return uint64(volatile.LoadUint8((*uint8)(p)))
	case 2:
		return uint64(volatile.LoadUint16((*uint16)(p)))
	case 4:
		return uint64(volatile.LoadUint32((*uint32)(p)))
	case 8:
		return volatile.LoadUint64((*uint64)(p))
	}
	return 0
}

//go:inline
func (Volatile) WriteRaw(addr uintptr, size int, v uint64) {
	p := unsafe.Pointer(addr)
	switch size {
	case 1:
		volatile.StoreUint8((*uint8)(p), uint8(v))
	case 2:
		volatile.StoreUint16((*uint16)(p), uint16(v))
	case 4:
		volatile.StoreUint32((*uint32)(p), uint32(v))
	case 8:
		volatile.StoreUint64((*uint64)(p), v)
	}
}
