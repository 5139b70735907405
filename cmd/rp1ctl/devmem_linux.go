package main

import (
	"rp1-go/drivers/mmio"
	"rp1-go/drivers/pl011"
	"rp1-go/drivers/rp1gpio"
)

const (
	uartWindow = 6 * 0x4000
	gpioWindow = rp1gpio.NumPins * 8
)

func openDevMem(path string) (mmio.Port, func() error, error) {
	d, err := mmio.OpenDevMem(path)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Map(pl011.Bases[0], uartWindow); err != nil {
		d.Close()
		return nil, nil, err
	}
	if err := d.Map(rp1gpio.Bases[0], gpioWindow); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, d.Close, nil
}
