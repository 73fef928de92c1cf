package dossim

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure reported by the filesystem, the resolver or the
// command interpreter. Kinds are strings so they read well in logs and snapshots.
type Kind string

const (
	KindInvalidName         Kind = "InvalidName"
	KindNameConflict        Kind = "NameConflict"
	KindNotFound            Kind = "NotFound"
	KindNotADirectory       Kind = "NotADirectory"
	KindNotAFile            Kind = "NotAFile"
	KindDirectoryNotEmpty   Kind = "DirectoryNotEmpty"
	KindNodeInUse           Kind = "NodeInUse"
	KindCyclicCopy          Kind = "CyclicCopy"
	KindInsufficientSpace   Kind = "InsufficientSpace"
	KindUnknownCommand      Kind = "UnknownCommand"
	KindInvalidArguments    Kind = "InvalidArguments"
	KindBatchRecursionLimit Kind = "BatchRecursionLimit"
	KindCorruptSnapshot     Kind = "CorruptSnapshot"
)

// Recoverable reports whether a batch run may continue after a command failed
// with this kind. Only recursion overflow and snapshot corruption abort a run.
func (k Kind) Recoverable() bool {
	switch k {
	case KindBatchRecursionLimit, KindCorruptSnapshot:
		return false
	}
	return true
}

// Error is the single error type produced by the core. It carries a Kind for
// programmatic handling and a human-readable message in DOS wording.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind. Compare with errors.Is:
//
//	if errors.Is(err, dossim.ErrNotFound) {
//	    // ...
//	}
var (
	ErrInvalidName         = &Error{Kind: KindInvalidName, Message: "invalid name"}
	ErrNameConflict        = &Error{Kind: KindNameConflict, Message: "name already exists"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrNotADirectory       = &Error{Kind: KindNotADirectory, Message: "not a directory"}
	ErrNotAFile            = &Error{Kind: KindNotAFile, Message: "not a file"}
	ErrDirectoryNotEmpty   = &Error{Kind: KindDirectoryNotEmpty, Message: "directory not empty"}
	ErrNodeInUse           = &Error{Kind: KindNodeInUse, Message: "node in use"}
	ErrCyclicCopy          = &Error{Kind: KindCyclicCopy, Message: "cyclic copy"}
	ErrInsufficientSpace   = &Error{Kind: KindInsufficientSpace, Message: "insufficient disk space"}
	ErrUnknownCommand      = &Error{Kind: KindUnknownCommand, Message: "bad command or file name"}
	ErrInvalidArguments    = &Error{Kind: KindInvalidArguments, Message: "invalid arguments"}
	ErrBatchRecursionLimit = &Error{Kind: KindBatchRecursionLimit, Message: "batch recursion limit exceeded"}
	ErrCorruptSnapshot     = &Error{Kind: KindCorruptSnapshot, Message: "corrupt snapshot"}
)

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PathError builds an *Error that records the offending path.
func PathError(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Path: path}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the Kind from err. Errors that did not originate in the core
// report an empty kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AsError converts any error into an *Error. Foreign errors become
// InvalidArguments, which is the closest kind for a failed invocation.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(KindInvalidArguments, err, "command failed")
}

// Sentinel errors for process-level failures outside the command core.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBatchFailed indicates a batch run recorded at least one failed command
	// and strict mode was requested.
	ErrBatchFailed = errors.New("batch run failed")

	// ErrUsage indicates the command line of the dossim binary itself was wrong.
	ErrUsage = errors.New("usage error")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrCorruptSnapshot):
		return ExitSnapshotError
	case errors.Is(err, ErrBatchRecursionLimit):
		return ExitBatchAborted
	case errors.Is(err, ErrBatchFailed):
		return ExitBatchFailed
	}

	// cobra reports argument problems as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "accepts ") ||
		strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "missing required argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
