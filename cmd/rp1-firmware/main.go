//go:build tinygo

// rp1-firmware brings up the RP1 console UART (UART0 on GPIO14/15) and
// prints a line forever. Any failure is reported on the debug console and
// the core halts.
package main

import (
	"tinygo.org/x/drivers"

	"rp1-go/drivers/mmio"
	"rp1-go/drivers/pl011"
	"rp1-go/drivers/rp1gpio"
	"rp1-go/x/conv"
)

const (
	consoleUART = 0
	consoleBaud = 115200
)

var message = []byte("We're looping!\r\n")

func main() {
	println("[boot] rp1 uart bring-up")

	port := mmio.Volatile{}

	gpio := rp1gpio.New(port)
	must("gpio14", gpio.ClaimPin("uart0", 14, rp1gpio.Uart0Tx))
	must("gpio15", gpio.ClaimPin("uart0", 15, rp1gpio.Uart0Rx))

	blk := pl011.NewBlock(port)
	blk.OnState(func(i int, s pl011.State) {
		println("[uart] uart", i, "->", s.String())
	})

	u, err := pl011.New(consoleUART).
		WithBaudRate(consoleBaud).
		WithWordLength(pl011.WordLength8).
		WithoutParity().
		WithStopBits(pl011.StopBitsOne).
		WithTransmitMode(pl011.Bidirectional).
		Build(blk)
	must("uart0", err)
	var buf [10]byte
	println("[boot] uart0 up at", string(conv.Dec(buf[:], uint32(consoleBaud), 0)), "baud")
	dumpRegisters(blk.Bank(), consoleUART)

	loop(u)
}

func loop(w drivers.UART) {
	for {
		if _, err := w.Write(message); err != nil {
			must("write", err)
		}
	}
}

func dumpRegisters(bank *mmio.Bank, index int) {
	var buf, dec [16]byte
	for _, r := range []mmio.Register{pl011.IBRD, pl011.FBRD, pl011.LCRH, pl011.CR} {
		v, err := bank.Load(r, index)
		if err != nil {
			println("[uart]", r.Name, "read failed:", err.Error())
			continue
		}
		println("[uart]", r.Name, "= 0x"+string(conv.Hex(buf[:], v, conv.HexDigits(uint(r.BitWidth)))), "("+string(conv.Dec(dec[:], v, 0))+")")
	}
}

func must(what string, err error) {
	if err == nil {
		return
	}
	println("[boot] FAIL", what+":", err.Error())
	halt()
}

func halt() {
	for {
	}
}
