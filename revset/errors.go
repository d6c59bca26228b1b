package revset

import (
	"errors"
	"fmt"

	"github.com/go-stack/stack"
)

// Sentinel errors returned by RevSet operations. Callers should compare with
// errors.Is, not string matching.
var (
	// ErrRepoGone is returned when a set's weak back-reference to its
	// repository has been invalidated.
	ErrRepoGone = errors.New("revset: repo gone")

	// ErrInvalidSlice is returned by Slice when start or stop is negative.
	ErrInvalidSlice = errors.New("revset: invalid slice bounds")

	// ErrUnknownPrefetchField is returned by IterCtx when a set carries a
	// prefetch tag with no registered pipeline.
	ErrUnknownPrefetchField = errors.New("revset: unknown prefetch field")
)

// ProgrammingErr marks a caller contract violation rather than a data
// problem — for example a registered PrefetchPipeline returning a nil
// iterator with a nil error. It carries a captured stack trace so a caller
// that logs the error instead of panicking on it still gets something to
// go on.
type ProgrammingErr struct {
	msg   string
	trace stack.CallStack
}

func (e *ProgrammingErr) Error() string {
	return fmt.Sprintf("revset: programming error: %s\n%+v", e.msg, e.trace)
}

// ProgrammingError builds a ProgrammingErr capturing the caller's stack.
func ProgrammingError(format string, args ...interface{}) error {
	return &ProgrammingErr{
		msg:   fmt.Sprintf(format, args...),
		trace: stack.Trace().TrimRuntime(),
	}
}
