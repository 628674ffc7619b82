package common_errors

import (
	"golang.org/x/xerrors"
)

var (
	ErrInvalidConfig           = xerrors.New("invalid nexmark configuration")
	ErrUnrecognizedSerdeFormat = xerrors.New("unrecognized serde format")
	ErrUnknownDelayPattern     = xerrors.New("unknown delay pattern")
	ErrUnknownSinkKind         = xerrors.New("unknown sink kind")
	ErrInvalidQPS              = xerrors.New("qps must be positive")
	ErrSinkTransient           = xerrors.New("transient sink error")
	ErrSinkFatal               = xerrors.New("fatal sink error")
	ErrSinkClosed              = xerrors.New("sink is closed")
)

// Transient wraps err so that IsTransient reports true for it.
func Transient(err error) error {
	return xerrors.Errorf("%v: %w", err, ErrSinkTransient)
}

// Fatal wraps err so that IsFatal reports true for it.
func Fatal(err error) error {
	return xerrors.Errorf("%v: %w", err, ErrSinkFatal)
}

func IsTransient(err error) bool {
	return xerrors.Is(err, ErrSinkTransient)
}

func IsFatal(err error) bool {
	return xerrors.Is(err, ErrSinkFatal)
}
