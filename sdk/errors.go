package sdk

import (
	"errors"
	"fmt"

	"github.com/brensch/snekarena/raw"
)

// ErrCoolDown matches a StatusError carrying raw.ErrCoolDown: the action was
// attempted too soon and may be retried in a later tick.
var ErrCoolDown = errors.New("cool down")

// StatusError carries a non-OK status code exactly as the host returned it.
type StatusError struct {
	Op   string
	Code int32
}

func (e *StatusError) Error() string {
	if e.Code == raw.ErrCoolDown {
		return fmt.Sprintf("%s: cool down (status %d)", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrCoolDown && e.Code == raw.ErrCoolDown
}

func statusError(op string, code int32) error {
	if code == raw.ErrOK {
		return nil
	}
	return &StatusError{Op: op, Code: code}
}
