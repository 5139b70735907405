package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"rp1-go/drivers/pl011"
)

var (
	monitorOpts = struct {
		port     string
		list     bool
		duration time.Duration
	}{}

	// monitor watches the far end of the UART link: a USB serial adapter
	// wired to the Pi's TXD/RXD, opened with the profile's line settings.
	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Print what arrives on a host serial port, using the profile's line settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if monitorOpts.list {
				ports, err := serial.GetPortsList()
				if err != nil {
					log.Print(err)
					return err
				}
				for _, p := range ports {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}
			p, err := loadProfile()
			if err != nil {
				log.Print(err)
				return err
			}
			c, err := p.UARTConfig()
			if err != nil {
				log.Print(err)
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if monitorOpts.duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, monitorOpts.duration)
				defer cancel()
			}
			if err := monitor(ctx, monitorOpts.port, serialMode(c), cmd.OutOrStdout()); err != nil {
				log.Print(err)
				return err
			}
			return nil
		},
	}
)

func init() {
	f := monitorCmd.Flags()
	f.StringVar(&monitorOpts.port, "port", "/dev/ttyUSB0", "host serial device")
	f.BoolVar(&monitorOpts.list, "list", false, "list host serial ports and exit")
	f.DurationVar(&monitorOpts.duration, "for", 0, "stop after this long (0: until interrupted)")
}

// serialMode translates a UART configuration into host port settings.
func serialMode(c pl011.Config) *serial.Mode {
	m := &serial.Mode{
		BaudRate: int(c.BaudRate()),
		DataBits: int(c.WordLength()),
		StopBits: serial.OneStopBit,
	}
	if c.StopBits() == pl011.StopBitsTwo {
		m.StopBits = serial.TwoStopBits
	}
	switch {
	case c.Parity() == pl011.ParityNone:
		m.Parity = serial.NoParity
	case c.StickParity() && c.Parity() == pl011.ParityEven:
		// Stick parity with EPS set transmits the parity bit as 0.
		m.Parity = serial.SpaceParity
	case c.StickParity():
		m.Parity = serial.MarkParity
	case c.Parity() == pl011.ParityEven:
		m.Parity = serial.EvenParity
	default:
		m.Parity = serial.OddParity
	}
	return m
}

func monitor(ctx context.Context, name string, mode *serial.Mode, out io.Writer) error {
	port, err := serial.Open(name, mode)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer port.Close()
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		return err
	}
	return copyUntil(ctx, out, port)
}

// copyUntil copies r to w until ctx is done. r must return periodically
// (a read timeout) so cancellation is noticed.
func copyUntil(ctx context.Context, w io.Writer, r io.Reader) error {
	buf := make([]byte, 256)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
