// Package pl011 drives the PL011-compatible UARTs of the RP1 south-bridge
// (Raspberry Pi 5): bring-up (disable, line control, baud divisors, enable)
// followed by polled I/O. All register traffic goes through mmio.Bank.
//
// Register map and bit positions: ARM PrimeCell UART (PL011) TRM, RP1
// peripherals datasheet section 3.2. The UART reference clock is 48 MHz.
package pl011

import (
	"strings"

	"rp1-go/drivers/mmio"
)

const (
	// NumInstances is the number of UARTs on RP1.
	NumInstances = 6

	// ClockHz is UARTCLK, the reference for the baud-rate divisor.
	ClockHz = 48_000_000
)

// Bases holds the physical base address of UART0..UART5.
var Bases = []uintptr{
	0x1F00030000, // UART0
	0x1F00034000, // UART1
	0x1F00038000, // UART2
	0x1F0003C000, // UART3
	0x1F00040000, // UART4
	0x1F00044000, // UART5
}

// Register descriptors. RSR/ECR and MIS/ICR share an offset and differ only
// in direction.
var (
	DR    = mmio.Register{Name: "DR", Offset: 0x000, BitWidth: 12, DataWidth: 8, Access: mmio.ReadWrite}
	RSR   = mmio.Register{Name: "RSR", Offset: 0x004, BitWidth: 4, Access: mmio.ReadOnly}
	ECR   = mmio.Register{Name: "ECR", Offset: 0x004, BitWidth: 4, Access: mmio.WriteOnly}
	FR    = mmio.Register{Name: "FR", Offset: 0x018, BitWidth: 9, DataWidth: 9, Access: mmio.ReadOnly}
	ILPR  = mmio.Register{Name: "ILPR", Offset: 0x020, BitWidth: 8, DataWidth: 8, Access: mmio.ReadWrite}
	IBRD  = mmio.Register{Name: "IBRD", Offset: 0x024, BitWidth: 16, DataWidth: 16, Access: mmio.ReadWrite}
	FBRD  = mmio.Register{Name: "FBRD", Offset: 0x028, BitWidth: 6, DataWidth: 6, Access: mmio.ReadWrite}
	LCRH  = mmio.Register{Name: "LCR_H", Offset: 0x02C, BitWidth: 8, DataWidth: 8, Access: mmio.ReadWrite}
	CR    = mmio.Register{Name: "CR", Offset: 0x030, BitWidth: 16, DataWidth: 16, Access: mmio.ReadWrite}
	IFLS  = mmio.Register{Name: "IFLS", Offset: 0x034, BitWidth: 6, DataWidth: 6, Access: mmio.ReadWrite}
	IMSC  = mmio.Register{Name: "IMSC", Offset: 0x038, BitWidth: 11, DataWidth: 11, Access: mmio.ReadWrite}
	RIS   = mmio.Register{Name: "RIS", Offset: 0x03C, BitWidth: 11, DataWidth: 11, Access: mmio.ReadOnly}
	MIS   = mmio.Register{Name: "MIS", Offset: 0x040, BitWidth: 11, DataWidth: 11, Access: mmio.ReadOnly}
	ICR   = mmio.Register{Name: "ICR", Offset: 0x040, BitWidth: 11, DataWidth: 11, Access: mmio.WriteOnly}
	DMACR = mmio.Register{Name: "DMACR", Offset: 0x048, BitWidth: 3, DataWidth: 3, Access: mmio.ReadWrite}
)

// Registers lists every descriptor in offset order.
var Registers = []mmio.Register{DR, RSR, ECR, FR, ILPR, IBRD, FBRD, LCRH, CR, IFLS, IMSC, RIS, MIS, ICR, DMACR}

// RegisterByName finds a descriptor by its manual name, ignoring case and an
// optional "UART" prefix ("cr", "UARTCR", "lcr_h").
func RegisterByName(name string) (mmio.Register, bool) {
	n := strings.ToUpper(name)
	n = strings.TrimPrefix(n, "UART")
	for _, r := range Registers {
		if r.Name == n || strings.ReplaceAll(r.Name, "_", "") == n {
			return r, true
		}
	}
	return mmio.Register{}, false
}

// CR (0x030) bits.
const (
	CREnable   = 1 << 0 // UARTEN
	CRTxEnable = 1 << 8 // TXE
	CRRxEnable = 1 << 9 // RXE
)

// LCR_H (0x02C) bits. Bits 15:8 are reserved and never written.
const (
	LCRBreak       = 1 << 0 // BRK
	LCRParityEn    = 1 << 1 // PEN
	LCREvenParity  = 1 << 2 // EPS
	LCRTwoStop     = 1 << 3 // STP2
	LCRFIFOEnable  = 1 << 4 // FEN
	LCRWordLenPos  = 5      // WLEN, bits 6:5
	LCRStickParity = 1 << 7 // SPS
)

// RSR (0x004) bits.
const (
	RSRFraming = 1 << 0
	RSRParity  = 1 << 1
	RSRBreak   = 1 << 2
	RSROverrun = 1 << 3
)

// lcrBits is the writable width of LCR_H.
const lcrBits = 8
