package bestiary

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal covers transport, TLS and parse failures.
	KindInternal Kind = iota
	// KindNotFound means the bestiary answered with anything other than 200.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the only error type returned by Client, Detail is safe to show to callers.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Err.Error() == e.Detail {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s", e.Detail, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notFound(name, url string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("Enemigo '%s' no encontrado en el bestiario. URL: %s", name, url),
	}
}

func internal(err error) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{Kind: KindInternal, Detail: err.Error(), Err: err}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return KindInternal, false
	}
	return e.Kind, true
}

func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsInternal reports true for internal bestiary errors and for any error that
// did not come from this package.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	kind, _ := kindOf(err)
	return kind == KindInternal
}
