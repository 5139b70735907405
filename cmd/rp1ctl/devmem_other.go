//go:build !linux

package main

import (
	"errors"

	"rp1-go/drivers/mmio"
)

func openDevMem(string) (mmio.Port, func() error, error) {
	return nil, nil, errors.New("/dev/mem access is only available on linux")
}
