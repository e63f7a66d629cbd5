package infra

import (
	"errors"
	"log/slog"

	"academy-booking/internal/pkg/errs"
)

type ErrorKind string

// InfraError is returned by the backend gateway and the storage drivers.
type InfraError struct {
	Kind   ErrorKind
	Status int // HTTP status for KindStatus / KindRejected
	msg    string
	err    error // wrapped low-level error
}

func (e InfraError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e InfraError) Unwrap() error {
	return e.err
}

func WrapErr(slogger *slog.Logger, kind ErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.Any("error", err))
	}

	slogger.Warn("Infrastructure error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return InfraError{Kind: kind, msg: msg, err: err}
}

// StatusErr records a non-2xx backend response.
func StatusErr(slogger *slog.Logger, kind ErrorKind, status int, msg string, cause error) error {
	slogger.Warn("Backend responded with error: "+msg,
		slog.String("kind", string(kind)),
		slog.Int("status", status))

	return InfraError{Kind: kind, Status: status, msg: msg, err: cause}
}

func IsKind(err error, kind ErrorKind) bool {
	var e InfraError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	// Backend gateway
	KindNetwork  ErrorKind = "NETWORK"
	KindStatus   ErrorKind = "STATUS"
	KindDecode   ErrorKind = "DECODE"
	KindRejected ErrorKind = "REJECTED"

	// Storage drivers
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindStoreFailure  ErrorKind = "STORE_FAILURE"
	KindSchemaFailure ErrorKind = "SCHEMA_FAILURE"
)
