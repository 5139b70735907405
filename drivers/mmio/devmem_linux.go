//go:build linux && !tinygo

package mmio

import (
	"errors"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	ErrWindowOverlap = errors.New("devmem window overlaps an existing mapping")
	ErrNotMapped     = errors.New("devmem address not mapped")
)

type window struct {
	base uintptr // page aligned
	mem  []byte
}

// DevMem is a Port over physical memory mapped from /dev/mem. Physical ranges
// must be mapped with Map before use; touching an unmapped address panics.
type DevMem struct {
	f   *os.File
	win []window
}

// OpenDevMem opens path (normally "/dev/mem") for synchronous read/write.
func OpenDevMem(path string) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	return &DevMem{f: f}, nil
}

// Map makes [phys, phys+length) reachable. The window is widened to page
// boundaries.
func (d *DevMem) Map(phys uintptr, length int) error {
	page := uintptr(os.Getpagesize())
	start := phys &^ (page - 1)
	end := (phys + uintptr(length) + page - 1) &^ (page - 1)
	for _, w := range d.win {
		if start < w.base+uintptr(len(w.mem)) && w.base < end {
			return ErrWindowOverlap
		}
	}
	mem, err := unix.Mmap(int(d.f.Fd()), int64(start), int(end-start),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	d.win = append(d.win, window{base: start, mem: mem})
	return nil
}

// Close unmaps every window and closes the device file.
func (d *DevMem) Close() error {
	var first error
	for _, w := range d.win {
		if err := unix.Munmap(w.mem); err != nil && first == nil {
			first = err
		}
	}
	d.win = nil
	if err := d.f.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

func (d *DevMem) ptr(addr uintptr, size int) unsafe.Pointer {
	for _, w := range d.win {
		if addr >= w.base && addr+uintptr(size) <= w.base+uintptr(len(w.mem)) {
			return unsafe.Pointer(&w.mem[addr-w.base])
		}
	}
	panic(ErrNotMapped)
}

// 32- and 64-bit transfers go through sync/atomic so the compiler cannot
// merge or drop them; byte and halfword transfers are plain single accesses.
func (d *DevMem) ReadRaw(addr uintptr, size int) uint64 {
	p := d.ptr(addr, size)
	switch size {
	case 1:
		return uint64(*(*uint8)(p))
	case 2:
		return uint64(*(*uint16)(p))
	case 4:
		return uint64(atomic.LoadUint32((*uint32)(p)))
	case 8:
		return atomic.LoadUint64((*uint64)(p))
	}
	return 0
}

func (d *DevMem) WriteRaw(addr uintptr, size int, v uint64) {
	p := d.ptr(addr, size)
	switch size {
	case 1:
		*(*uint8)(p) = uint8(v)
	case 2:
		*(*uint16)(p) = uint16(v)
	case 4:
		atomic.StoreUint32((*uint32)(p), uint32(v))
	case 8:
		atomic.StoreUint64((*uint64)(p), v)
	}
}
