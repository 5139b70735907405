package pl011

// Flags is a decoded snapshot of the flag register (FR). It is a value; read
// FR again to observe a change.
type Flags uint16

const (
	FlagCTS  Flags = 1 << 0 // clear to send
	FlagDSR  Flags = 1 << 1 // data set ready
	FlagDCD  Flags = 1 << 2 // data carrier detect
	FlagBusy Flags = 1 << 3 // transmitting, FIFO or shift register not empty
	FlagRXFE Flags = 1 << 4 // receive FIFO empty
	FlagTXFF Flags = 1 << 5 // transmit FIFO full
	FlagRXFF Flags = 1 << 6 // receive FIFO full
	FlagTXFE Flags = 1 << 7 // transmit FIFO empty

	flagsMask = 0xFF
)

// DecodeFlags keeps the eight documented status bits of a raw FR value.
func DecodeFlags(raw uint64) Flags { return Flags(raw & flagsMask) }

func (f Flags) Has(m Flags) bool { return f&m == m }

func (f Flags) ClearToSend() bool       { return f.Has(FlagCTS) }
func (f Flags) DataSetReady() bool      { return f.Has(FlagDSR) }
func (f Flags) DataCarrierDetect() bool { return f.Has(FlagDCD) }
func (f Flags) TransmitBusy() bool      { return f.Has(FlagBusy) }
func (f Flags) ReceiveFIFOEmpty() bool  { return f.Has(FlagRXFE) }
func (f Flags) TransmitFIFOFull() bool  { return f.Has(FlagTXFF) }
func (f Flags) ReceiveFIFOFull() bool   { return f.Has(FlagRXFF) }
func (f Flags) TransmitFIFOEmpty() bool { return f.Has(FlagTXFE) }

var flagNames = [...]string{"CTS", "DSR", "DCD", "BUSY", "RXFE", "TXFF", "RXFF", "TXFE"}

// String lists the set flags, e.g. "RXFE|TXFE", or "-" when none are set.
func (f Flags) String() string {
	s := ""
	for i, n := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n
	}
	if s == "" {
		return "-"
	}
	return s
}
