package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"rp1-go/errcode"
)

// A register script is one command per line, split with shell quoting rules:
//
//	bringup                 # bring up the profile's UART
//	uart 2                  # address UART2 from here on
//	write CR 0x301
//	read LCR_H
//	expect FBRD 3           # fail unless FBRD reads 3
//	send 'hello\r\n'        # needs a prior bringup
//	flags
//	dump
var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run a register script (- reads standard input)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(s *session) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runScript(s, in)
		})
	},
}

func runScript(s *session, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		words, err := shlex.Split(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(words) == 0 {
			continue
		}
		if err := runStatement(s, words); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, words[0], err)
		}
	}
	return sc.Err()
}

func runStatement(s *session, w []string) error {
	argc := func(n int) error {
		if len(w)-1 != n {
			return fmt.Errorf("want %d argument(s), got %d", n, len(w)-1)
		}
		return nil
	}
	switch strings.ToLower(w[0]) {
	case "bringup":
		if err := argc(0); err != nil {
			return err
		}
		p, err := loadProfile()
		if err != nil {
			return err
		}
		return s.bringUp(p)
	case "uart":
		if err := argc(1); err != nil {
			return err
		}
		n, err := strconv.Atoi(w[1])
		if err != nil {
			return err
		}
		if _, err := s.uarts.Bank().Resolve(n); err != nil {
			return err
		}
		s.index = n
		return nil
	case "read":
		if err := argc(1); err != nil {
			return err
		}
		_, err := s.read(w[1])
		return err
	case "write":
		if err := argc(2); err != nil {
			return err
		}
		return s.write(w[1], w[2])
	case "expect":
		if err := argc(2); err != nil {
			return err
		}
		want, err := strconv.ParseUint(w[2], 0, 64)
		if err != nil {
			return err
		}
		got, err := s.read(w[1])
		if err != nil {
			return err
		}
		if got != want {
			return &errcode.E{C: errcode.VerificationFailed, Op: w[1], Msg: fmt.Sprintf("read %#x, want %#x", got, want)}
		}
		return nil
	case "send":
		if err := argc(1); err != nil {
			return err
		}
		return s.send(unescape(w[1]))
	case "flags":
		if err := argc(0); err != nil {
			return err
		}
		f, err := s.flags()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "uart%d FR %s\n", s.index, f)
		return nil
	case "dump":
		if err := argc(0); err != nil {
			return err
		}
		return s.dump()
	}
	return errors.New("unknown statement")
}

// unescape turns \r, \n and \t into control characters. Write them inside
// single quotes: shlex strips the backslash inside double quotes.
func unescape(s string) string {
	return strings.NewReplacer(`\r`, "\r", `\n`, "\n", `\t`, "\t").Replace(s)
}

