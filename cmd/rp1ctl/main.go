// rp1ctl pokes the RP1 UARTs and GPIO mux from Linux on a Raspberry Pi 5
// (through /dev/mem) or against the built-in device model.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rp1ctl: ")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
