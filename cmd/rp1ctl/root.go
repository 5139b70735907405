package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"rp1-go/config"
)

var (
	rootOpts = struct {
		devmem  string
		uart    int
		board   string
		profile string
	}{}

	rootCmd = &cobra.Command{
		Use:           "rp1ctl",
		Short:         "Inspect and drive the RP1 UARTs of a Raspberry Pi 5",
		Long:          "rp1ctl programs the RP1 PL011 UARTs and GPIO mux through /dev/mem, or against a device model when --devmem is empty.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootOpts.devmem, "devmem", "", "physical memory device, e.g. /dev/mem (empty: device model)")
	pf.IntVarP(&rootOpts.uart, "uart", "u", 0, "UART instance addressed by read, write and dump")
	pf.StringVarP(&rootOpts.board, "board", "b", "rpi5", "embedded board profile")
	pf.StringVarP(&rootOpts.profile, "profile", "p", "", "YAML profile file (overrides --board)")

	rootCmd.AddCommand(bringupCmd, readCmd, writeCmd, dumpCmd, scriptCmd, monitorCmd, boardsCmd)
}

// run opens a session for the duration of fn. Errors are logged here once;
// cobra is told to stay quiet about them.
func run(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := newSession(rootOpts.devmem, rootOpts.uart, cmd.OutOrStdout())
	if err != nil {
		log.Print(err)
		return err
	}
	defer s.Close()
	if err := fn(s); err != nil {
		log.Print(err)
		return err
	}
	return nil
}

func loadProfile() (*config.Profile, error) {
	if rootOpts.profile == "" {
		return config.Embedded(rootOpts.board)
	}
	f, err := os.Open(rootOpts.profile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := config.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rootOpts.profile, err)
	}
	return p, nil
}

var (
	bringupOpts = struct{ send string }{}

	bringupCmd = &cobra.Command{
		Use:   "bringup",
		Short: "Mux the profile's pins and bring its UART up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(s *session) error {
				p, err := loadProfile()
				if err != nil {
					return err
				}
				if err := s.bringUp(p); err != nil {
					return err
				}
				if bringupOpts.send == "" {
					return nil
				}
				if err := s.send(bringupOpts.send); err != nil {
					return err
				}
				if s.sim != nil {
					fmt.Fprintf(s.out, "uart%d sent %q\n", s.index, s.sim.Sent(s.index))
				}
				return nil
			})
		},
	}

	readCmd = &cobra.Command{
		Use:   "read REGISTER",
		Short: "Read one UART register by name (CR, UARTFR, lcr_h, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(s *session) error {
				_, err := s.read(args[0])
				return err
			})
		},
	}

	writeCmd = &cobra.Command{
		Use:   "write REGISTER VALUE",
		Short: "Write one UART register; VALUE accepts 0x and 0b prefixes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(s *session) error {
				return s.write(args[0], args[1])
			})
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print every readable UART register",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(s *session) error { return s.dump() })
		},
	}

	boardsCmd = &cobra.Command{
		Use:   "boards",
		Short: "List the embedded board profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, b := range config.Boards() {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
		},
	}
)

func init() {
	bringupCmd.Flags().StringVar(&bringupOpts.send, "send", "", "text to transmit after bring-up")
}
