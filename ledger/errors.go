package ledger

import (
	"errors"
	"fmt"
)

// Kind groups every failure the ledger can produce. Callers branch on the
// kind, not on message text.
type Kind uint8

const (
	// KindUnknown covers storage faults and other internal failures.
	KindUnknown Kind = iota
	// KindAuthorization: caller is not owner, not a verified NGO, or not
	// the project's NGO.
	KindAuthorization
	// KindNotFound: missing project or milestone index out of range.
	KindNotFound
	// KindInvalidInput: zero or out-of-range amounts, mismatched arrays,
	// past deadlines, floors above amounts, fee above cap.
	KindInvalidInput
	// KindStateConflict: operation fired against the wrong lifecycle state
	// (inactive project, released milestone, double vote, wrong asset).
	KindStateConflict
	// KindInsufficient: missing contribution, balance, allowance, quorum,
	// funding floor or pool coverage.
	KindInsufficient
	// KindPaused: a value-moving operation hit the wrong side of the
	// global pause flag.
	KindPaused
)

// String names the kind for logs and events.
func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindStateConflict:
		return "state_conflict"
	case KindInsufficient:
		return "insufficient"
	case KindPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Error is the single error type every operation returns. It never wraps
// partial state: if an operation errors, nothing was committed.
type Error struct {
	kind Kind
	msg  string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Kind exposes the failure group.
func (e *Error) Kind() Kind { return e.kind }

// KindOf extracts the kind from any error returned by the ledger.
// Non-ledger errors map to KindUnknown.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.kind
	}
	return KindUnknown
}

func errAuthf(format string, args ...any) error {
	return &Error{kind: KindAuthorization, msg: fmt.Sprintf(format, args...)}
}

func errNotFoundf(format string, args ...any) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func errInputf(format string, args ...any) error {
	return &Error{kind: KindInvalidInput, msg: fmt.Sprintf(format, args...)}
}

func errConflictf(format string, args ...any) error {
	return &Error{kind: KindStateConflict, msg: fmt.Sprintf(format, args...)}
}

func errScarcef(format string, args ...any) error {
	return &Error{kind: KindInsufficient, msg: fmt.Sprintf(format, args...)}
}

func errPausedf(format string, args ...any) error {
	return &Error{kind: KindPaused, msg: fmt.Sprintf(format, args...)}
}

func errStoref(format string, args ...any) error {
	return &Error{kind: KindUnknown, msg: fmt.Sprintf(format, args...)}
}
