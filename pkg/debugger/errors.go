package debugger

import (
	"errors"
	"fmt"
)

// The error taxonomy has four levels: command, argument, value and
// resolution. Everything here is recoverable: a failed parse aborts the
// current command, is reported to the operator, and the prompt loop
// continues. Argument-level errors wrap the value-level error that caused
// them, so errors.As reaches the root cause.

// Value-level errors.
var (
	// ErrMalformedInteger marks a token that committed to being an integer
	// (sign, radix prefix, leading zero) but failed the grammar.
	ErrMalformedInteger = errors.New("malformed integer")
	// ErrMalformedLabel marks a token that started like a label but
	// contains characters no label or offset can.
	ErrMalformedLabel = errors.New("malformed label")
	// ErrMalformedPCOffset marks a '^' token whose offset is not an integer.
	ErrMalformedPCOffset = errors.New("malformed program counter offset")
)

// IntegerTooLargeError reports a value that does not fit the target width.
type IntegerTooLargeError struct {
	Max uint32
}

func (e *IntegerTooLargeError) Error() string {
	return fmt.Sprintf("integer too large (maximum value: %d)", e.Max)
}

// MismatchedTypeError reports an argument of the wrong kind, naming the
// naive classification of what was found where one is available.
type MismatchedTypeError struct {
	Expected string
	Actual   string
}

func (e *MismatchedTypeError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Actual)
}

// Command-level errors.

// InvalidCommandError reports an unrecognized command name.
type InvalidCommandError struct {
	Name string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("not a command: `%s`", e.Name)
}

// MissingSubcommandError reports a command that needs a subcommand and got
// none.
type MissingSubcommandError struct {
	Command string
}

func (e *MissingSubcommandError) Error() string {
	return fmt.Sprintf("missing subcommand for `%s`", e.Command)
}

// InvalidSubcommandError reports a present but unrecognized subcommand. It
// is deliberately distinct from MissingSubcommandError.
type InvalidSubcommandError struct {
	Command    string
	Subcommand string
}

func (e *InvalidSubcommandError) Error() string {
	return fmt.Sprintf("invalid subcommand `%s` for `%s`", e.Subcommand, e.Command)
}

// Argument-level errors.

// MissingArgumentError reports a required argument that was not given.
type MissingArgumentError struct {
	Argument string
	Expected int
	Actual   int
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument `%s` (expected %d arguments, found %d)",
		e.Argument, e.Expected, e.Actual)
}

// InvalidValueError wraps a value-level error with the argument name and
// offending text.
type InvalidValueError struct {
	Argument string
	Text     string
	Err      error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value `%s` for argument `%s`: %s", e.Text, e.Argument, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// TooManyArgumentsError reports unconsumed trailing arguments.
type TooManyArgumentsError struct {
	Expected int
	Actual   int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments (expected %d, found %d)", e.Expected, e.Actual)
}
