package mmio

// Port performs raw, sized memory transfers. size is one of 1, 2, 4 or 8
// bytes and each call is exactly one access at addr; implementations backed
// by hardware must not merge, split, reorder or elide them.
type Port interface {
	ReadRaw(addr uintptr, size int) uint64
	WriteRaw(addr uintptr, size int, v uint64)
}
