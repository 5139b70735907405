package pl011sim

import (
	"testing"

	"rp1-go/drivers/pl011"
)

func fr(s *Sim, i int) pl011.Flags {
	return pl011.Flags(s.ReadRaw(pl011.Bases[i]+pl011.FR.Offset, 2))
}

func TestTransmitDrainsOnePerPoll(t *testing.T) {
	s := New()
	dr := pl011.Bases[0] + pl011.DR.Offset
	s.Poke(pl011.Bases[0]+pl011.LCRH.Offset, 1, pl011.LCRFIFOEnable)

	for _, c := range []byte("abc") {
		s.WriteRaw(dr, 1, uint64(c))
	}
	if string(s.Sent(0)) != "abc" {
		t.Fatalf("sent %q", s.Sent(0))
	}
	for i := 0; i < 3; i++ {
		if f := fr(s, 0); !f.TransmitBusy() || f.TransmitFIFOEmpty() {
			t.Fatalf("poll %d: %s", i, f)
		}
	}
	if f := fr(s, 0); f.TransmitBusy() || !f.TransmitFIFOEmpty() {
		t.Fatalf("drained: %s", f)
	}
}

func TestNoFIFODropsOverrun(t *testing.T) {
	s := New()
	dr := pl011.Bases[1] + pl011.DR.Offset
	s.WriteRaw(dr, 1, 'x')
	s.WriteRaw(dr, 1, 'y') // holding register full
	if string(s.Sent(1)) != "x" {
		t.Fatalf("sent %q", s.Sent(1))
	}
	if f := fr(s, 1); !f.TransmitFIFOFull() {
		t.Fatalf("flags %s", f)
	}
}

func TestReceive(t *testing.T) {
	s := New()
	dr := pl011.Bases[2] + pl011.DR.Offset
	if f := fr(s, 2); !f.ReceiveFIFOEmpty() {
		t.Fatalf("flags %s", f)
	}
	s.Inject(2, 'h', 'i')
	if got := s.ReadRaw(dr, 1); got != 'h' {
		t.Fatalf("got %q", rune(got))
	}
	if got := s.ReadRaw(dr, 1); got != 'i' {
		t.Fatalf("got %q", rune(got))
	}
	if f := fr(s, 2); !f.ReceiveFIFOEmpty() {
		t.Fatalf("flags %s", f)
	}
}

func TestStallTx(t *testing.T) {
	s := New()
	s.WriteRaw(pl011.Bases[1]+pl011.LCRH.Offset, 1, pl011.LCRFIFOEnable)
	s.StallTx(1, 2)
	for _, c := range []byte("abc") {
		s.WriteRaw(pl011.Bases[1]+pl011.DR.Offset, 1, uint64(c))
	}
	for i := 0; i < 4; i++ {
		if f := fr(s, 1); !f.TransmitFIFOFull() || f.TransmitFIFOEmpty() {
			t.Fatalf("poll %d: flags %s", i, f)
		}
	}
	s.StallTx(1, -1)
	if f := fr(s, 1); f.TransmitFIFOFull() {
		t.Fatalf("still stalled: %s", f)
	}
}

func TestStickCR(t *testing.T) {
	s := New()
	s.StickCR(0, pl011.CREnable, pl011.CRTxEnable)
	s.WriteRaw(pl011.Bases[0]+pl011.CR.Offset, 2, pl011.CRTxEnable|pl011.CRRxEnable)
	if got := s.Register(pl011.CR, 0); got != pl011.CREnable|pl011.CRRxEnable {
		t.Fatalf("CR=%#x", got)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	s := New()
	s.Inject(3, 1)
	if f := fr(s, 4); !f.ReceiveFIFOEmpty() {
		t.Fatalf("uart4 sees uart3 data: %s", f)
	}
	s.HoldBusy(5, 1)
	if f := fr(s, 0); f.TransmitBusy() {
		t.Fatal("uart0 busy")
	}
	if f := fr(s, 5); !f.TransmitBusy() {
		t.Fatal("uart5 not busy")
	}
}
