package assets

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why a load failed.
type Kind int

const (
	KindResourceUnavailable Kind = iota + 1 // bad status / missing resource
	KindTransfer                            // body read interrupted or truncated
	KindDecode                              // bytes are not a supported image
	KindTimeout                             // deadline hit before completion
)

var (
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrTransfer            = errors.New("transfer error")
	ErrDecode              = errors.New("decode error")
	ErrTimeout             = errors.New("timeout")
)

func (k Kind) sentinel() error {
	switch k {
	case KindResourceUnavailable:
		return ErrResourceUnavailable
	case KindTransfer:
		return ErrTransfer
	case KindDecode:
		return ErrDecode
	case KindTimeout:
		return ErrTimeout
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by every Loader operation.
type Error struct {
	Kind       Kind
	Name       string
	StatusCode int // HTTP status, 0 when the fetcher has none
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("load %q: %s", e.Name, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers match on the kind sentinels, e.g. errors.Is(err, ErrDecode).
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

// failure wraps err as an *Error. An err that is already an *Error keeps its
// kind, and timeouts are promoted to KindTimeout whatever stage they hit.
func failure(kind Kind, name string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		if le.Name == "" {
			le.Name = name
		}
		return le
	}
	if isTimeout(err) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Name: name, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
