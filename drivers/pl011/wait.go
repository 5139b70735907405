package pl011

import (
	"time"

	"rp1-go/errcode"
)

// Waiter blocks until ready reports true or fails. Busy-waits in this package
// (BUSY during disable, TXFF/RXFE during polled I/O) all go through it.
type Waiter interface {
	Until(ready func() (bool, error)) error
}

// Spin polls forever. A peripheral that never becomes ready hangs the caller;
// there is no timeout.
type Spin struct{}

func (Spin) Until(ready func() (bool, error)) error {
	for {
		ok, err := ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}

// Bounded polls at most Max times (at least once) and then fails with
// errcode.Timeout.
type Bounded struct{ Max int }

func (w Bounded) Until(ready func() (bool, error)) error {
	n := w.Max
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		ok, err := ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return errcode.Timeout
}

// Deadline polls until Timeout has elapsed since the first poll and then
// fails with errcode.Timeout. ready is always called at least once.
type Deadline struct{ Timeout time.Duration }

func (w Deadline) Until(ready func() (bool, error)) error {
	start := time.Now()
	for {
		ok, err := ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Since(start) >= w.Timeout {
			return errcode.Timeout
		}
	}
}
