package pl011

import "rp1-go/errcode"

// State is a step of the bring-up sequence. Steps run strictly in order and
// the sequence stops at the first failure.
type State uint8

const (
	StateUnknown State = iota
	StateDisabling
	StateConfiguringLine
	StateSettingBaud
	StateEnabling
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateDisabling:
		return "disabling"
	case StateConfiguringLine:
		return "configuring_line"
	case StateSettingBaud:
		return "setting_baud"
	case StateEnabling:
		return "enabling"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

func (b *Block) enter(index int, s State) {
	if b.onState != nil {
		b.onState(index, s)
	}
}

func (b *Block) bringUp(c Config) (*UART, error) {
	i := c.index

	b.enter(i, StateDisabling)
	if err := b.disable(i); err != nil {
		return nil, errcode.Wrap("pl011.disable", err)
	}

	b.enter(i, StateConfiguringLine)
	if _, err := b.bank.Write(LCRH, i, uint64(LineControl(c)), lcrBits); err != nil {
		return nil, errcode.Wrap("pl011.line_control", err)
	}

	b.enter(i, StateSettingBaud)
	if err := b.setBaud(i, c.baud); err != nil {
		return nil, errcode.Wrap("pl011.baud", err)
	}

	b.enter(i, StateEnabling)
	if err := b.enable(i, c.mode); err != nil {
		return nil, errcode.Wrap("pl011.enable", err)
	}

	b.enter(i, StateRunning)
	return &UART{blk: b, index: i}, nil
}

// disable stops the UART, lets the character in flight finish and flushes the
// FIFOs by clearing FEN. Required before any reprogramming.
func (b *Block) disable(i int) error {
	if err := b.bank.Modify(CR, i, uint(CR.BitWidth), 0, CREnable|CRTxEnable|CRRxEnable); err != nil {
		return err
	}
	err := b.wait.Until(func() (bool, error) {
		f, err := b.ReadFlags(i)
		return !f.TransmitBusy(), err
	})
	if err != nil {
		return err
	}
	return b.bank.Modify(LCRH, i, lcrBits, 0, LCRFIFOEnable)
}

func (b *Block) setBaud(i int, baud uint32) error {
	ibrd, fbrd, err := Divisors(b.clockHz, baud)
	if err != nil {
		return err
	}
	if err := b.bank.Store(IBRD, i, uint64(ibrd)); err != nil {
		return err
	}
	return b.bank.Store(FBRD, i, uint64(fbrd))
}

// enable sets the direction bits and UARTEN in one CR write and verifies the
// result by reading CR back. An already set UARTEN means someone else brought
// the UART up while we were configuring it.
func (b *Block) enable(i int, mode TransmitMode) error {
	cur, err := b.bank.Load(CR, i)
	if err != nil {
		return err
	}
	if cur&CREnable != 0 {
		return errcode.AlreadyEnabled
	}

	v := cur
	switch mode {
	case TxOnly:
		v = v&^CRRxEnable | CRTxEnable
	case RxOnly:
		v = v&^CRTxEnable | CRRxEnable
	default:
		v |= CRTxEnable | CRRxEnable
	}
	v |= CREnable

	if err := b.bank.Store(CR, i, v); err != nil {
		return err
	}
	got, err := b.bank.Load(CR, i)
	if err != nil {
		return err
	}
	if got != v {
		return &errcode.E{C: errcode.VerificationFailed, Op: CR.Name, Msg: "read-back differs from written value"}
	}
	return nil
}
