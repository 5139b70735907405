package rp1gpio

// Function is a peripheral signal that can be routed to a pin. The zero
// value means no function.
type Function uint8

const (
	FuncNone Function = iota

	Spi0Sio0
	Spi0Sio2
	Spi2Csn0
	Spi2Sio1
	DpiPclk
	DpiDe
	I2c0Sda
	I2c0Scl
	Uart0Tx
	Uart0Rx
	Uart1Tx
	Uart1Rx
	SysRio0
	SysRio1
	ProcRio0
	ProcRio1
	Pio0
	Pio1

	numFunctions
)

var functionNames = [numFunctions]string{
	FuncNone: "none",
	Spi0Sio0: "spi0_sio0",
	Spi0Sio2: "spi0_sio2",
	Spi2Csn0: "spi2_csn0",
	Spi2Sio1: "spi2_sio1",
	DpiPclk:  "dpi_pclk",
	DpiDe:    "dpi_de",
	I2c0Sda:  "i2c0_sda",
	I2c0Scl:  "i2c0_scl",
	Uart0Tx:  "uart0_tx",
	Uart0Rx:  "uart0_rx",
	Uart1Tx:  "uart1_tx",
	Uart1Rx:  "uart1_rx",
	SysRio0:  "sys_rio0",
	SysRio1:  "sys_rio1",
	ProcRio0: "proc_rio0",
	ProcRio1: "proc_rio1",
	Pio0:     "pio0",
	Pio1:     "pio1",
}

func (f Function) String() string {
	if f < numFunctions {
		return functionNames[f]
	}
	return "unknown"
}

// ParseFunction maps a name as printed by String back to a Function.
func ParseFunction(s string) (Function, bool) {
	for i, n := range functionNames {
		if n == s {
			return Function(i), true
		}
	}
	return FuncNone, false
}

// NumAlt is the number of function-select slots (a0..a8) per pin.
const NumAlt = 9

// funcTable is the RP1 function-select table, RP1 peripherals datasheet
// section 3.1.1. Only the pins this package has been used with are filled
// in; an empty slot is either not transcribed or reserved.
var funcTable = [NumPins][NumAlt]Function{
	0:  {Spi0Sio0, DpiPclk, Uart1Tx, I2c0Sda, FuncNone, SysRio0, ProcRio0, Pio0, Spi2Csn0},
	1:  {Spi0Sio2, DpiDe, Uart1Rx, I2c0Scl, FuncNone, SysRio1, ProcRio1, Pio1, Spi2Sio1},
	14: {4: Uart0Tx},
	15: {4: Uart0Rx},
}

// Alternatives returns the function of every select slot of pin.
func Alternatives(pin int) ([NumAlt]Function, bool) {
	if pin < 0 || pin >= NumPins {
		return [NumAlt]Function{}, false
	}
	return funcTable[pin], true
}
