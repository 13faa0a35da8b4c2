package ftp

import (
	"fmt"

	_ftp "github.com/jlaffaye/ftp"
)

type dataConnErr string

func (e dataConnErr) Error() string { return string(e) }

const (
	readInvalidDataconnType  = dataConnErr("dataconn must be open for read mode to conduct a read")
	writeInvalidDataconnType = dataConnErr("dataconn must be open for write mode to conduct a write")
	dataconnClosed           = dataConnErr("dataconn is already closed")
)

type kindErr string

func (e kindErr) Error() string { return string(e) }

// Error kinds. Every *Error matches exactly one of them with errors.Is.
const (
	ErrConnectivity = kindErr("ftp: connection failure")
	ErrProtocol     = kindErr("ftp: protocol error")
	ErrAuth         = kindErr("ftp: authentication failed")
	ErrPermission   = kindErr("ftp: permission denied")
	ErrBusy         = kindErr("ftp: session is busy with another transfer")
	ErrCanceled     = kindErr("ftp: operation canceled")
)

// Error is returned by session operations. Code and Line carry the server reply when there was one.
type Error struct {
	Kind kindErr
	Op   string
	Code int
	Line string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(": %d %s", e.Code, _ftp.StatusText(e.Code))
		if e.Line != "" {
			msg += fmt.Sprintf(" [%s]", e.Line)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindErr)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind kindErr, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// replyError classifies an unexpected reply to op.
func replyError(op string, r *reply) *Error {
	kind := ErrProtocol
	switch {
	case r.code == _ftp.StatusNotAvailable:
		kind = ErrConnectivity
	case r.code == _ftp.StatusNotLoggedIn || r.code == _ftp.StatusStorNeedAccount:
		kind = ErrAuth
	case r.code == _ftp.StatusFileUnavailable || r.code == _ftp.StatusFileActionIgnored ||
		r.code == _ftp.StatusBadFileName:
		kind = ErrPermission
	}
	return &Error{Kind: kind, Op: op, Code: r.code, Line: r.message()}
}
