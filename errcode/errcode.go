package errcode

// Code is a stable, machine-readable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	Timeout       Code = "timeout"

	// Register access engine.
	InvalidIndex            Code = "invalid_index"
	AccessDenied            Code = "access_denied"
	WidthOverflow           Code = "width_overflow"
	UnsupportedRegisterSize Code = "unsupported_register_size"

	// UART bring-up.
	InvalidBaudRate    Code = "invalid_baud_rate"
	AlreadyEnabled     Code = "already_enabled"
	VerificationFailed Code = "verification_failed"

	// GPIO.
	UnknownPin      Code = "unknown_pin"
	InvalidFunction Code = "invalid_function"
	PinInUse        Code = "pin_in_use"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the operation that failed and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

// New returns an *E for op with code c.
func New(op string, c Code) *E { return &E{C: c, Op: op} }

// Wrap returns an *E for op, taking the code from err.
// A nil err yields nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: Of(err), Op: op, Err: err}
}

// Error renders "op: code: msg: cause". A wrapped *E with the same code is
// rendered as a chain of ops instead: "pl011.enable: CR: verification_failed".
func (e *E) Error() string {
	var s string
	if in, ok := e.Err.(*E); ok && in.C == e.C && e.Msg == "" {
		s = in.Error()
	} else {
		s = string(e.C)
		if e.Msg != "" {
			s += ": " + e.Msg
		}
		if _, bare := e.Err.(Code); e.Err != nil && !bare {
			s += ": " + e.Err.Error()
		}
	}
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	return s
}

// Unwrap exposes the cause, or the bare Code when there is none, so that
// errors.Is(err, errcode.AccessDenied) holds for every *E.
func (e *E) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.C
}

func (e *E) Code() Code { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
