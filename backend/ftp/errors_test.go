package ftp

import (
	"errors"
	"io"
	"testing"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/assert"
)

func TestDataConnErr_Error(t *testing.T) {
	tests := []struct {
		err      dataConnErr
		expected string
	}{
		{readInvalidDataconnType, "dataconn must be open for read mode to conduct a read"},
		{writeInvalidDataconnType, "dataconn must be open for write mode to conduct a write"},
		{dataconnClosed, "dataconn is already closed"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("expected %v, got %v", tt.expected, tt.err.Error())
		}
	}
}

func TestReplyError(t *testing.T) {
	tests := []struct {
		code int
		kind error
	}{
		{421, ErrConnectivity},
		{530, ErrAuth},
		{532, ErrAuth},
		{550, ErrPermission},
		{450, ErrPermission},
		{553, ErrPermission},
		{500, ErrProtocol},
		{425, ErrProtocol},
	}
	for _, tt := range tests {
		err := replyError("RETR", &reply{code: tt.code, lines: []string{"some text"}})
		assert.ErrorIs(t, err, tt.kind, "code %d", tt.code)
		assert.Equal(t, tt.code, err.Code)
	}
}

func TestErrorString(t *testing.T) {
	err := replyError("DELE", &reply{code: 550, lines: []string{"550 gone"}})
	assert.Equal(t, "ftp: permission denied (DELE): 550 "+_ftp.StatusText(550)+" [gone]", err.Error())

	wrapped := newError(ErrConnectivity, "dial", io.ErrUnexpectedEOF)
	assert.Equal(t, "ftp: connection failure (dial): unexpected EOF", wrapped.Error())
	assert.True(t, errors.Is(wrapped, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(wrapped, ErrAuth))
}
