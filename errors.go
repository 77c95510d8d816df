package sqlfrag

import (
	"errors"
	"fmt"
	r "reflect"
	"strings"
)

/*
Classifies errors produced by this package. Prefer matching the sentinel `Err`
variables via `errors.Is` over comparing codes directly.
*/
type ErrCode string

const (
	ErrCodeUnknown             ErrCode = ""
	ErrCodeInvalidInput        ErrCode = "InvalidInput"
	ErrCodeMalformedFrag       ErrCode = "MalformedFrag"
	ErrCodeMissingArgument     ErrCode = "MissingArgument"
	ErrCodeUnexpectedParameter ErrCode = "UnexpectedParameter"
	ErrCodeUnusedArgument      ErrCode = "UnusedArgument"
	ErrCodeOrdinalOutOfBounds  ErrCode = "OrdinalOutOfBounds"
	ErrCodeInvalidTemplate     ErrCode = "InvalidTemplate"
)

/*
Sentinels for `errors.Is`. Any `Err` with the same code matches, regardless of
its context and cause:

	_, err := MakeFrag([]string{`one`, `two`})
	errors.Is(err, ErrMalformedFrag) // true
*/
var (
	ErrInvalidInput        = ErrCodeInvalidInput.sentinel(`invalid input`)
	ErrMalformedFrag       = ErrCodeMalformedFrag.sentinel(`malformed fragment`)
	ErrMissingArgument     = ErrCodeMissingArgument.sentinel(`missing argument`)
	ErrUnexpectedParameter = ErrCodeUnexpectedParameter.sentinel(`unexpected parameter`)
	ErrUnusedArgument      = ErrCodeUnusedArgument.sentinel(`unused argument`)
	ErrOrdinalOutOfBounds  = ErrCodeOrdinalOutOfBounds.sentinel(`ordinal parameter exceeds arguments`)
	ErrInvalidTemplate     = ErrCodeInvalidTemplate.sentinel(`invalid template`)
)

func (self ErrCode) sentinel(msg string) Err {
	return Err{Code: self, Cause: errors.New(msg)}
}

/*
Error type used throughout this package. `While` describes the operation that
failed, such as "parsing template". `Cause` is the underlying error, if any.
Errors are values and may carry per-call details, so compare them with
`errors.Is` rather than `==`.
*/
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}

	var buf strings.Builder
	buf.WriteString(`[sqlfrag]`)
	if self.Code != ErrCodeUnknown {
		buf.WriteString(` `)
		buf.WriteString(string(self.Code))
	}
	if self.While != `` {
		buf.WriteString(` while `)
		buf.WriteString(self.While)
	}
	if self.Cause != nil {
		buf.WriteString(`: `)
		buf.WriteString(self.Cause.Error())
	}
	return buf.String()
}

// Matches any `Err` with the same code, or anything matched by the cause.
func (self Err) Is(other error) bool {
	if err, ok := other.(Err); ok && err.Code == self.Code {
		return true
	}
	return self.Cause != nil && errors.Is(self.Cause, other)
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error { return self.Cause }

func errMalformed(while string, segs, vals int) Err {
	return Err{
		Code:  ErrCodeMalformedFrag,
		While: while,
		Cause: fmt.Errorf(`%v values require %v segments, got %v`, vals, vals+1, segs),
	}
}

func errExpectedStruct(while string, typ r.Type) Err {
	return Err{
		Code:  ErrCodeInvalidInput,
		While: while,
		Cause: fmt.Errorf(`expected a struct type, got %v`, typ),
	}
}
