package ov5642

import "fmt"

// Code is a stable error identifier. It is comparable and implements error so
// callers can match it with errors.Is.
type Code string

func (c Code) Error() string { return string(c) }

const (
	// InvalidParameter is returned when an argument is outside its documented
	// range. It is always detected before any bus transaction.
	InvalidParameter Code = "invalid_parameter"
	// BusFailure is returned when a register transaction fails. The
	// underlying transport error is kept as the cause and is not retried.
	//
	// Setters that write several registers stop at the first failure and do
	// not roll back, so the device may be left partially configured.
	BusFailure Code = "bus_failure"
)

// Error carries a Code together with the operation and register involved.
type Error struct {
	C   Code
	Op  string
	Reg uint16
	Err error
}

func (e *Error) Error() string {
	if e.C == BusFailure {
		return fmt.Sprintf("%s: %s 0x%04x: %v", e.C, e.Op, e.Reg, e.Err)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.C, e.Op, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.C, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Code of e.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Code returns the error code.
func (e *Error) Code() Code { return e.C }

// CodeOf extracts a Code from err. A nil error has no code and an error that
// did not originate in this package is reported as BusFailure, since every
// foreign error reaching a caller came from the transport.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	if c, ok := err.(Code); ok {
		return c
	}

	type coder interface{ Code() Code }

	if x, ok := err.(coder); ok {
		return x.Code()
	}

	return BusFailure
}

// invalid builds an InvalidParameter error for operation op.
func invalid(op string, format string, args ...interface{}) error {
	return &Error{C: InvalidParameter, Op: op, Err: fmt.Errorf(format, args...)}
}

// busErr wraps a transport error for register reg.
func busErr(op string, reg uint16, err error) error {
	return &Error{C: BusFailure, Op: op, Reg: reg, Err: err}
}
