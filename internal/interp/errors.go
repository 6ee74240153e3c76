package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/woodhull/taskmgr/internal/store"
)

// Kind identifies a recognized failure. Kinds are flat for signaling
// purposes: the dispatcher renders the kind name and the original line,
// nothing else.
type Kind string

const (
	KindTooManyArguments    Kind = "TooManyArguments"
	KindInvalidArgument     Kind = "InvalidArgument"
	KindInvalidArgumentType Kind = "InvalidArgumentType"
	KindMissingArguments    Kind = "MissingArguments"
	KindInvalidDateFormat   Kind = "InvalidDateFormat"
	KindInvalidRepeat       Kind = "InvalidRepeat"
	KindInvalidPriority     Kind = "InvalidPriority"
	KindTaskNotFound        Kind = "TaskNotFound"
	KindInvalidDoneStatus   Kind = "InvalidDoneStatus"
	KindUnknownCommand      Kind = "UnknownCommand"
	KindTooLongLine         Kind = "TooLongLine"
)

// CommandError is the typed failure every validator and handler returns.
type CommandError struct {
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewCommandError creates a CommandError with the given kind and an
// optional detail for logs. The detail never reaches stdout.
func NewCommandError(kind Kind, detail string) *CommandError {
	return &CommandError{Kind: kind, Detail: detail}
}

func errKind(kind Kind) *CommandError {
	return &CommandError{Kind: kind}
}

// KindOf maps any error to the kind the output contract reports for it.
// Store lookups translate to TaskNotFound; anything unrecognized is
// coerced to InvalidArgument rather than propagated.
func KindOf(err error) Kind {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	if errors.Is(err, store.ErrNotFound) {
		return KindTaskNotFound
	}
	return KindInvalidArgument
}

// WriteSuccess writes the success line for the original input line.
func WriteSuccess(w io.Writer, line string) {
	fmt.Fprintf(w, "Command success: %s\n", line)
}

// WriteError writes the one-line diagnostic for a failure of the given
// kind, echoing the original input line verbatim.
func WriteError(w io.Writer, kind Kind, line string) {
	fmt.Fprintf(w, "Error %s: %s\n", kind, line)
}
