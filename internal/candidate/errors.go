package candidate

import "fmt"

// MembershipError reports a queue operation misuse: an op on HEADER, a
// double remove, or a remove of a never-enqueued id. The engine maps this
// back onto peel.MembershipViolation at its boundary.
type MembershipError struct {
	Op      string
	Message string
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func errMembership(op, format string, args ...any) error {
	return &MembershipError{Op: op, Message: fmt.Sprintf(format, args...)}
}
