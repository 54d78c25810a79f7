package ops

import "fmt"

// 🚫 OperationNotFoundError is returned by Registry.Get for an unknown name.
type OperationNotFoundError struct {
	Name string
}

func (e *OperationNotFoundError) Error() string {
	return fmt.Sprintf("operation not found: %s", e.Name)
}

// 🚫 ArgumentError indicates a wrong arity or an invalid argument value,
// e.g. a non-numeric array index or a missing required argument.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

func argErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// 🚫 InputTypeError indicates the operation received a value of the wrong
// shape, e.g. a scalar where an array was required.
type InputTypeError struct {
	Expected string
	Got      any
}

func (e *InputTypeError) Error() string {
	return fmt.Sprintf("expected %s input, got %s", e.Expected, typeName(e.Got))
}

// 🚫 DataFormatError indicates malformed data handed to a parsing or query
// operation, e.g. invalid JSON.
type DataFormatError struct {
	Msg string
	Err error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// 🚫 IOError indicates a file read failure in readFile/loadFile.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
