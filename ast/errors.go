package ast

// UsageError reports an invalid request by the caller, such as piping into
// something that cannot take an argument. It is never retried.
type UsageError struct {
	Op  string // operation that rejected the input, e.g. "pipe"
	Msg string
}

func (e *UsageError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// NewUsageError returns a *UsageError for op.
func NewUsageError(op, msg string) *UsageError {
	return &UsageError{Op: op, Msg: msg}
}
