package config

import "golang.org/x/exp/slices"

// EmbeddedLookup resolves a board name to a compiled-in profile and
// EmbeddedBoards names the boards it knows. Tests replace them together.
var (
	EmbeddedLookup = func(board string) ([]byte, bool) {
		b, ok := embeddedProfiles[board]
		return b, ok
	}
	EmbeddedBoards = func() []string {
		names := make([]string, 0, len(embeddedProfiles))
		for n := range embeddedProfiles {
			names = append(names, n)
		}
		return names
	}
)

// Embedded returns the compiled-in profile for board.
func Embedded(board string) (*Profile, error) {
	raw, ok := EmbeddedLookup(board)
	if !ok || len(raw) == 0 {
		return nil, invalid("no embedded profile for board "+board, nil)
	}
	return Parse(raw)
}

// Boards lists, sorted, the boards Embedded can resolve.
func Boards() []string {
	var names []string
	for _, n := range EmbeddedBoards() {
		if raw, ok := EmbeddedLookup(n); ok && len(raw) > 0 {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// UART0 on the 40-pin header (GPIO14 TXD, GPIO15 RXD), the console setup
// the boot firmware uses.
const profileRPi5 = `board: rpi5
uart:
  index: 0
  baud: 115200
  word_length: 8
  parity: none
  stop_bits: 1
  fifo: false
  mode: bidirectional
pins:
  - {pin: 14, function: uart0_tx}
  - {pin: 15, function: uart0_rx}
`

// UART1 on GPIO0/1, transmit only, FIFOs on.
const profileRPi5UART1 = `board: rpi5-uart1
uart:
  index: 1
  baud: 9600
  fifo: true
  mode: tx
pins:
  - {pin: 0, function: uart1_tx}
  - {pin: 1, function: uart1_rx}
`

var embeddedProfiles = map[string][]byte{
	"rpi5":       []byte(profileRPi5),
	"rpi5-uart1": []byte(profileRPi5UART1),
}
