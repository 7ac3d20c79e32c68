package csvkv

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is returned when the source file cannot be opened.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedSource is returned when the source file is empty or its
	// header row cannot be parsed.
	ErrMalformedSource = errors.New("malformed source")

	// ErrStoreUnavailable is returned when the key-value store cannot be
	// reached or an operation against it fails. Failures are surfaced
	// immediately, never retried internally.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrInvalidNamespace indicates a namespace outside [0, MaxNamespace].
// It is returned before any store interaction takes place.
type ErrInvalidNamespace struct {
	Namespace int
}

func (e *ErrInvalidNamespace) Error() string {
	return fmt.Sprintf("invalid namespace: %d (valid range 0-%d)", e.Namespace, MaxNamespace)
}

// ErrRowArityMismatch indicates a data row whose field count does not match
// the header. With the default policy the row is skipped and logged; with
// WithStrictRows the import aborts and returns this error.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrRowArityMismatch struct {
	Line     int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrRowArityMismatch) Error() string {
	return fmt.Sprintf("row arity mismatch on line %d: got %d fields, want %d", e.Line, e.Actual, e.Expected)
}

func (e *ErrRowArityMismatch) Unwrap() error { return e.cause }

// ErrCorruptRecord indicates a stored blob that failed to decompress or
// decode. This means store corruption or a writer/reader encoding mismatch
// and is never silently swallowed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorruptRecord struct {
	Key   string
	Index int
	cause error
}

func (e *ErrCorruptRecord) Error() string {
	return fmt.Sprintf("corrupt record %d under key %q", e.Index, e.Key)
}

func (e *ErrCorruptRecord) Unwrap() error { return e.cause }

// wrapStore tags store-level failures so callers can detect them by kind.
func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
