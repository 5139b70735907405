package rp1gpio

import (
	"errors"
	"testing"

	"rp1-go/drivers/mmio"
	"rp1-go/errcode"
)

func newTestBlock() (*Block, *mmio.Memory) {
	mem := mmio.NewMemory()
	return New(mem), mem
}

func ctrlAddr(pin int) uintptr { return Bases[pin] + CTRL.Offset }

func TestBases(t *testing.T) {
	if len(Bases) != NumPins || Bases[0] != 0x1F000D0000 || Bases[14] != 0x1F000D0070 || Bases[27] != 0x1F000D00D8 {
		t.Fatalf("bases %#x", Bases)
	}
}

func TestFuncSel(t *testing.T) {
	cases := []struct {
		pin  int
		fn   Function
		want uint8
	}{
		{0, Spi0Sio0, 0},
		{0, Uart1Tx, 2},
		{0, Spi2Csn0, 8},
		{1, I2c0Scl, 3},
		{14, Uart0Tx, 4},
		{15, Uart0Rx, 4},
		{7, FuncNone, FuncSelNull},
	}
	for _, c := range cases {
		got, err := FuncSel(c.pin, c.fn)
		if err != nil || got != c.want {
			t.Errorf("pin %d %s: got %d err %v", c.pin, c.fn, got, err)
		}
	}
	if _, err := FuncSel(14, Uart0Rx); errcode.Of(err) != errcode.InvalidFunction {
		t.Fatalf("err=%v", err)
	}
	if _, err := FuncSel(NumPins, Uart0Rx); err != errcode.UnknownPin {
		t.Fatalf("err=%v", err)
	}
}

func TestSetFunctionKeepsOverrides(t *testing.T) {
	b, mem := newTestBlock()
	mem.Poke(ctrlAddr(14), 4, 0x0003_301F) // INOVER=3, OEOVER=0, OUTOVER=3, FUNCSEL=null

	if err := b.SetFunction(14, Uart0Tx); err != nil {
		t.Fatal(err)
	}
	if got := mem.Peek(ctrlAddr(14), 4); got != 0x0003_3004 {
		t.Fatalf("CTRL=%#x", got)
	}
	tr := mem.Transfers()
	if len(tr) != 2 || tr[0].Write || tr[0].Size != 4 || !tr[1].Write || tr[1].Size != 4 {
		t.Fatalf("transfers %+v", tr)
	}

	fn, err := b.Function(14)
	if err != nil || fn != Uart0Tx {
		t.Fatalf("fn=%s err=%v", fn, err)
	}
}

func TestSetFunctionClearsHighCtrlBits(t *testing.T) {
	b, mem := newTestBlock()
	mem.Poke(ctrlAddr(15), 4, 0xF000_001F)
	if err := b.SetFunction(15, Uart0Rx); err != nil {
		t.Fatal(err)
	}
	if got := mem.Peek(ctrlAddr(15), 4); got != 0x04 {
		t.Fatalf("CTRL=%#x", got)
	}
}

func TestSetFunctionRejected(t *testing.T) {
	b, mem := newTestBlock()
	if err := b.SetFunction(14, Uart0Rx); !errors.Is(err, errcode.InvalidFunction) {
		t.Fatalf("err=%v", err)
	}
	if err := b.SetFunction(-1, Uart0Rx); err != errcode.UnknownPin {
		t.Fatalf("err=%v", err)
	}
	if n := len(mem.Transfers()); n != 0 {
		t.Fatalf("%d accesses", n)
	}
}

func TestFunctionNull(t *testing.T) {
	b, mem := newTestBlock()
	mem.Poke(ctrlAddr(3), 4, FuncSelNull)
	if fn, err := b.Function(3); err != nil || fn != FuncNone {
		t.Fatalf("fn=%s err=%v", fn, err)
	}
	if err := b.SetFunction(0, Pio0); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFunction(0, FuncNone); err != nil {
		t.Fatal(err)
	}
	if got := mem.Peek(ctrlAddr(0), 4); got != FuncSelNull {
		t.Fatalf("CTRL=%#x", got)
	}
}

func TestOverrides(t *testing.T) {
	b, mem := newTestBlock()
	if err := b.SetOutputOverride(5, OverrideHigh); err != nil {
		t.Fatal(err)
	}
	if err := b.SetOutputEnableOverride(5, OverrideHigh); err != nil {
		t.Fatal(err)
	}
	if err := b.SetInputOverride(5, OverrideInvert); err != nil {
		t.Fatal(err)
	}
	if got := mem.Peek(ctrlAddr(5), 4); got != 0x1_F000 {
		t.Fatalf("CTRL=%#x", got)
	}
	if err := b.SetOutputOverride(5, OverrideHigh+1); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err=%v", err)
	}
}

func TestStatus(t *testing.T) {
	b, mem := newTestBlock()
	mem.Poke(Bases[2]+STATUS.Offset, 4, uint64(StatusOutToPad|StatusOEToPad|StatusInFromPad))
	s, err := b.Status(2)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Output() || !s.OutputEnabled() || !s.Input() || s.Has(StatusInToPeri) {
		t.Fatalf("status %#x", uint32(s))
	}
	if _, err := b.Status(NumPins); err != errcode.UnknownPin {
		t.Fatalf("err=%v", err)
	}
	// STATUS is read-only.
	if _, err := b.Bank().Write(STATUS, 2, 0, 32); errcode.Of(err) != errcode.AccessDenied {
		t.Fatalf("err=%v", err)
	}
}

func TestClaimPin(t *testing.T) {
	b, mem := newTestBlock()
	if err := b.ClaimPin("uart0", 14, Uart0Tx); err != nil {
		t.Fatal(err)
	}
	if err := b.ClaimPin("pio", 14, FuncNone); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("err=%v", err)
	}
	if err := b.ClaimPin("uart0", 14, Uart0Tx); err != nil {
		t.Fatalf("re-claim by owner: %v", err)
	}
	if o, ok := b.Owner(14); !ok || o != "uart0" {
		t.Fatalf("owner %q %v", o, ok)
	}

	// A failed route leaves the pin unclaimed.
	if err := b.ClaimPin("i2c", 2, I2c0Sda); errcode.Of(err) != errcode.InvalidFunction {
		t.Fatalf("err=%v", err)
	}
	if _, ok := b.Owner(2); ok {
		t.Fatal("pin 2 claimed")
	}

	if err := b.ReleasePin("pio", 14); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Owner(14); !ok {
		t.Fatal("released by non-owner")
	}
	if err := b.ReleasePin("uart0", 14); err != nil {
		t.Fatal(err)
	}
	if got := mem.Peek(ctrlAddr(14), 4); got != FuncSelNull {
		t.Fatalf("CTRL=%#x", got)
	}
	if err := b.ClaimPin("pio", 14, FuncNone); err != nil {
		t.Fatal(err)
	}
}

func TestReleasePinKeepsClaimOnFailure(t *testing.T) {
	b, mem := newTestBlock()
	if err := b.ClaimPin("uart0", 15, Uart0Rx); err != nil {
		t.Fatal(err)
	}
	b.bank = mmio.NewBank(mem, Bases[:15])
	if err := b.ReleasePin("uart0", 15); errcode.Of(err) != errcode.InvalidIndex {
		t.Fatalf("err=%v", err)
	}
	if o, ok := b.Owner(15); !ok || o != "uart0" {
		t.Fatalf("owner %q %v after failed release", o, ok)
	}
	if got := mem.Peek(ctrlAddr(15), 4); got != 4 {
		t.Fatalf("CTRL=%#x", got)
	}
}

func TestParseFunction(t *testing.T) {
	for f := FuncNone; f < numFunctions; f++ {
		got, ok := ParseFunction(f.String())
		if !ok || got != f {
			t.Fatalf("%s: got %s %v", f, got, ok)
		}
	}
	if _, ok := ParseFunction("uart9_tx"); ok {
		t.Fatal("parsed bogus name")
	}
}
