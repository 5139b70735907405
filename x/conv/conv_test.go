package conv

import "testing"

func TestDec(t *testing.T) {
	var buf [20]byte
	cases := []struct {
		n     uint64
		width int
		want  string
	}{
		{0, 0, "0"},
		{48_000_000, 0, "48000000"},
		{26, 0, "26"},
		{3, 2, "03"},
		{115200, 3, "115200"},
		{^uint64(0), 0, "18446744073709551615"},
	}
	for _, c := range cases {
		if got := string(Dec(buf[:], c.n, c.width)); got != c.want {
			t.Errorf("Dec(%d, %d)=%q want %q", c.n, c.width, got, c.want)
		}
	}
	if got := Dec(buf[:2], uint16(115), 0); len(got) != 0 {
		t.Fatalf("short buffer gave %q", got)
	}
	if got := string(Dec(buf[:], uint8(255), 0)); got != "255" {
		t.Fatalf("uint8: %q", got)
	}
}

func TestHex(t *testing.T) {
	var buf [16]byte
	cases := []struct {
		n      uint64
		digits int
		want   string
	}{
		{0x301, 4, "0301"},
		{0x70, 2, "70"},
		{0x1F00030000, 10, "1F00030000"},
		{0xABC, 1, "C"},
		{0, 0, "0"},
		{^uint64(0), 20, "FFFFFFFFFFFFFFFF"},
	}
	for _, c := range cases {
		if got := string(Hex(buf[:], c.n, c.digits)); got != c.want {
			t.Errorf("Hex(%#x, %d)=%q want %q", c.n, c.digits, got, c.want)
		}
	}
	if got := string(U32Hex(buf[:], 0xDEAD)); got != "0000DEAD" {
		t.Fatalf("U32Hex=%q", got)
	}
	if got := Hex(buf[:2], 0x123, 3); len(got) != 0 {
		t.Fatalf("short buffer gave %q", got)
	}
}

func TestHexDigits(t *testing.T) {
	for bits, want := range map[uint]int{0: 1, 1: 1, 4: 1, 6: 2, 8: 2, 9: 3, 12: 3, 16: 4, 32: 8} {
		if got := HexDigits(bits); got != want {
			t.Errorf("HexDigits(%d)=%d want %d", bits, got, want)
		}
	}
}
