package keystore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"
)

// ErrorKind classifies keystore failures. The I/O kinds follow the usual
// operating system failure classes; the last kinds are specific to the
// record format.
type ErrorKind uint8

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindConnectionRefused
	KindConnectionReset
	KindConnectionAborted
	KindNotConnected
	KindAddrInUse
	KindAddrNotAvailable
	KindBrokenPipe
	KindAlreadyExists
	KindWouldBlock
	KindInvalidInput
	KindInvalidData
	KindTimedOut
	KindWriteZero
	KindInterrupted
	KindUnexpectedEOF
	KindUnsupported
	KindOutOfMemory
	// KindFixedLengthConversion means a record field could not be read as
	// a fixed 32-byte array.
	KindFixedLengthConversion
	// KindUnsupportedCipher means the record tag names a cipher this
	// keystore cannot decode.
	KindUnsupportedCipher
)

var kindNames = map[ErrorKind]string{
	KindOther:                 "other",
	KindNotFound:              "not found",
	KindPermissionDenied:      "permission denied",
	KindConnectionRefused:     "connection refused",
	KindConnectionReset:       "connection reset",
	KindConnectionAborted:     "connection aborted",
	KindNotConnected:          "not connected",
	KindAddrInUse:             "address in use",
	KindAddrNotAvailable:      "address not available",
	KindBrokenPipe:            "broken pipe",
	KindAlreadyExists:         "already exists",
	KindWouldBlock:            "would block",
	KindInvalidInput:          "invalid input",
	KindInvalidData:           "invalid data",
	KindTimedOut:              "timed out",
	KindWriteZero:             "write zero",
	KindInterrupted:           "interrupted",
	KindUnexpectedEOF:         "unexpected end of data",
	KindUnsupported:           "unsupported",
	KindOutOfMemory:           "out of memory",
	KindFixedLengthConversion: "fixed-length conversion failed",
	KindUnsupportedCipher:     "unsupported cipher",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrPermissionDenied      = &Error{Kind: KindPermissionDenied}
	ErrAlreadyExists         = &Error{Kind: KindAlreadyExists}
	ErrInvalidData           = &Error{Kind: KindInvalidData}
	ErrFixedLengthConversion = &Error{Kind: KindFixedLengthConversion}
	ErrUnsupportedCipher     = &Error{Kind: KindUnsupportedCipher}
)

// Error is the only error type returned by this package.
type Error struct {
	Op   string
	Path string
	Kind ErrorKind
	Msg  string
	Err  error
}

func newError(op, path string, kind ErrorKind, msg string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	s := "keystore"
	if e.Op != "" {
		s += ": " + e.Op
	}
	if e.Path != "" {
		s += " " + e.Path
	}
	s += ": " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so the package sentinels
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindOther if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// mapOSError converts a filesystem error into an *Error, keeping the
// original as the wrapped cause.
func mapOSError(op, path string, err error) *Error {
	if err == nil {
		return nil
	}
	var ke *Error
	if errors.As(err, &ke) {
		return ke
	}
	return newError(op, path, classify(err), "", err)
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return KindTimedOut
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return KindUnexpectedEOF
	case errors.Is(err, io.ErrShortWrite):
		return KindWriteZero
	case errors.Is(err, fs.ErrInvalid):
		return KindInvalidInput
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return KindOther
	}
	switch errno {
	case syscall.ECONNREFUSED:
		return KindConnectionRefused
	case syscall.ECONNRESET:
		return KindConnectionReset
	case syscall.ECONNABORTED:
		return KindConnectionAborted
	case syscall.ENOTCONN:
		return KindNotConnected
	case syscall.EADDRINUSE:
		return KindAddrInUse
	case syscall.EADDRNOTAVAIL:
		return KindAddrNotAvailable
	case syscall.EPIPE:
		return KindBrokenPipe
	case syscall.EAGAIN:
		return KindWouldBlock
	case syscall.EINVAL:
		return KindInvalidInput
	case syscall.EINTR:
		return KindInterrupted
	case syscall.ENOMEM:
		return KindOutOfMemory
	case syscall.ENOSYS, syscall.EOPNOTSUPP:
		return KindUnsupported
	case syscall.ETIMEDOUT:
		return KindTimedOut
	default:
		return KindOther
	}
}
