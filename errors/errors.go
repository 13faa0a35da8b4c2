// Package errors provides an accumulator for the errors of multi-step operations, including those raised in defers.
package errors

import (
	"github.com/hashicorp/go-multierror"
)

// MultiErr collects errors from a sequence of steps so a function can return all of them as one.
type MultiErr struct {
	err *multierror.Error
}

// NewMutliErr returns a new, empty MultiErr.
func NewMutliErr() *MultiErr {
	return &MultiErr{}
}

// Append adds the non-nil errors to the accumulator and returns the combined error.
func (me *MultiErr) Append(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			me.err = multierror.Append(me.err, err)
		}
	}
	return me.OrNil()
}

// DeferFunc runs f and keeps its error. Intended for `defer errs.DeferFunc(f.Close)`.
func (me *MultiErr) DeferFunc(f func() error) {
	_ = me.Append(f())
}

// Len returns the number of collected errors.
func (me *MultiErr) Len() int {
	if me.err == nil {
		return 0
	}
	return me.err.Len()
}

// OrNil returns nil when no error was collected, otherwise the combined error.
func (me *MultiErr) OrNil() error {
	if me.err == nil || len(me.err.Errors) == 0 {
		return nil
	}
	return me.err
}
