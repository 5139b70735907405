package mmio

// Transfer records one access seen by a Memory port.
type Transfer struct {
	Write bool
	Addr  uintptr
	Size  int
	Value uint64
}

// ReadHook computes the value a read at a hooked address returns. stored is
// the value currently held in memory.
type ReadHook func(size int, stored uint64) uint64

// WriteHook computes the value kept in memory after a write of v.
type WriteHook func(size int, v uint64) uint64

// Memory is a Port backed by a sparse little-endian byte map. Unwritten bytes
// read as zero. Every ReadRaw/WriteRaw is appended to the transfer log; Peek
// and Poke bypass both the log and the hooks.
type Memory struct {
	cells  map[uintptr]byte
	log    []Transfer
	reads  map[uintptr]ReadHook
	writes map[uintptr]WriteHook
}

func NewMemory() *Memory {
	return &Memory{
		cells:  make(map[uintptr]byte),
		reads:  make(map[uintptr]ReadHook),
		writes: make(map[uintptr]WriteHook),
	}
}

func (m *Memory) ReadRaw(addr uintptr, size int) uint64 {
	v := m.Peek(addr, size)
	if h, ok := m.reads[addr]; ok {
		v = h(size, v)
	}
	m.log = append(m.log, Transfer{Addr: addr, Size: size, Value: v})
	return v
}

func (m *Memory) WriteRaw(addr uintptr, size int, v uint64) {
	m.log = append(m.log, Transfer{Write: true, Addr: addr, Size: size, Value: v})
	if h, ok := m.writes[addr]; ok {
		v = h(size, v)
	}
	m.Poke(addr, size, v)
}

// Peek returns size bytes at addr without logging or hooks.
func (m *Memory) Peek(addr uintptr, size int) uint64 {
	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(m.cells[addr+uintptr(i)]) << (8 * i)
	}
	return v
}

// Poke stores size bytes of v at addr without logging or hooks.
func (m *Memory) Poke(addr uintptr, size int, v uint64) {
	for i := 0; i < size; i++ {
		m.cells[addr+uintptr(i)] = byte(v >> (8 * i))
	}
}

// HookRead installs h for reads at addr, replacing any previous hook.
func (m *Memory) HookRead(addr uintptr, h ReadHook) { m.reads[addr] = h }

// HookWrite installs h for writes at addr, replacing any previous hook.
func (m *Memory) HookWrite(addr uintptr, h WriteHook) { m.writes[addr] = h }

// Transfers returns the accesses logged since the last ResetLog.
func (m *Memory) Transfers() []Transfer { return m.log }

// ResetLog discards the transfer log.
func (m *Memory) ResetLog() { m.log = m.log[:0] }
