package rp1gpio

import "rp1-go/errcode"

// Status is a decoded GPIO_STATUS snapshot.
type Status uint32

const (
	StatusOutFromPeri Status = 1 << 8
	StatusOutToPad    Status = 1 << 9
	StatusOEFromPeri  Status = 1 << 12
	StatusOEToPad     Status = 1 << 13
	StatusInFromPad   Status = 1 << 17
	StatusInToPeri    Status = 1 << 19
	StatusIRQToProc   Status = 1 << 29
)

func (s Status) Has(m Status) bool { return s&m == m }

// Output is the level driven to the pad, after overrides.
func (s Status) Output() bool { return s.Has(StatusOutToPad) }

// OutputEnabled reports whether the pad output driver is on, after overrides.
func (s Status) OutputEnabled() bool { return s.Has(StatusOEToPad) }

// Input is the level seen on the pad, before input overrides.
func (s Status) Input() bool { return s.Has(StatusInFromPad) }

// Status reads GPIO_STATUS of pin.
func (b *Block) Status(pin int) (Status, error) {
	if pin < 0 || pin >= NumPins {
		return 0, errcode.UnknownPin
	}
	v, err := b.bank.Load(STATUS, pin)
	if err != nil {
		return 0, err
	}
	return Status(v), nil
}
