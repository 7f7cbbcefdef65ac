package eval

import (
	"fmt"
	"io"

	"github.com/RubixDev/Roost/pkg/diag"
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/parse"
)

// frame is the context in which code is evaluated: the source it comes from
// and the writers of the current Eval call.
type frame struct {
	src       parse.Source
	stdout    io.Writer
	stderr    io.Writer
	interrupt <-chan struct{}
	// Number of calls being evaluated.
	depth int
}

// fork returns a copy of the frame for evaluating code from another source,
// such as the body of a function declared elsewhere.
func (fm *frame) fork(src parse.Source) *frame {
	newFm := *fm
	newFm.src = src
	return &newFm
}

func (fm *frame) context(r diag.Ranger) *diag.Context {
	return diag.NewContext(fm.src.Name, fm.src.Code, r)
}

// errorf returns an exception wrapping a RuntimeError with the context of r.
func (fm *frame) errorf(r diag.Ranger, kind errs.Kind, format string, args ...any) error {
	return newRuntimeException(kind, fmt.Sprintf(format, args...), fm.context(r))
}

// wrap attaches the context of r to an error returned by a runtime facility.
// An *errs.Error becomes an exception; other errors are returned as is.
func (fm *frame) wrap(r diag.Ranger, err error) error {
	if e, ok := err.(*errs.Error); ok {
		return newRuntimeException(e.Kind, e.Message, fm.context(r))
	}
	return err
}

func (fm *frame) checkInterrupt() error {
	if fm.interrupt == nil {
		return nil
	}
	select {
	case <-fm.interrupt:
		return ErrInterrupted
	default:
		return nil
	}
}
