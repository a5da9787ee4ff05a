package strand

import (
	"errors"
	"fmt"
)

// Error attributes a failure to the strand that produced it. Every error
// returned by [Group.Wait] or [Handle.Join] is an *Error.
type Error struct {
	Strand Info
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("strand %q failed: %v", e.Strand.Name, e.Err)
}

// Format lets %+v print the underlying error verbosely, which keeps stack
// traces attached by the failing strand.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "strand %q failed: %+v", e.Strand.Name, e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NameOf returns the name of the strand behind the first [*Error] in
// err's chain.
func NameOf(err error) (string, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Strand.Name, true
	}
	return "", false
}

// CauseOf unwraps the first [*Error] in err's chain and returns the error
// the strand itself returned. Anything else is returned as-is.
func CauseOf(err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se.Err
	}
	return err
}
