package ftp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend/ftp/mocks"
)

func TestWithClient(t *testing.T) {
	client := mocks.NewClient(t)
	fs := &FileSystem{}

	opt := WithClient(client)
	opt.Apply(fs)

	assert.Equal(t, client, fs.client, "Client should be set correctly")
	assert.Equal(t, optionNameFTPClient, opt.NewFileSystemOptionName())
}

func TestWithOptions(t *testing.T) {
	options := Options{Username: "bob", DirectoryTimeout: time.Minute}
	fs := &FileSystem{}

	opt := WithOptions(options)
	opt.Apply(fs)

	assert.Equal(t, options, fs.options, "Options should be set correctly")
	assert.Equal(t, optionNameOptions, opt.NewFileSystemOptionName())
}

func TestWithLogger(t *testing.T) {
	log := zap.NewExample()
	fs := &FileSystem{}

	opt := WithLogger(log)
	opt.Apply(fs)

	assert.Same(t, log, fs.log)
	assert.Equal(t, optionNameLogger, opt.NewFileSystemOptionName())
}

func TestWithDialer(t *testing.T) {
	d := &net.Dialer{Timeout: time.Second}
	fs := &FileSystem{}

	opt := WithDialer(d)
	opt.Apply(fs)

	assert.Equal(t, d, fs.dialer)
	assert.Equal(t, optionNameDialer, opt.NewFileSystemOptionName())
}

func TestWithPrompter(t *testing.T) {
	fs := &FileSystem{}
	opt := WithPrompter(PrompterFunc(func(context.Context, string, string) (string, error) {
		return "typed", nil
	}))
	opt.Apply(fs)

	if assert.NotNil(t, fs.prompter) {
		pw, err := fs.prompter.Password(context.Background(), "bob", "host")
		assert.NoError(t, err)
		assert.Equal(t, "typed", pw)
	}
	assert.Equal(t, optionNamePrompter, opt.NewFileSystemOptionName())
}

func TestWithCredentialResolver(t *testing.T) {
	r := &failingResolver{}
	fs := &FileSystem{}

	opt := WithCredentialResolver(r)
	opt.Apply(fs)

	assert.Same(t, r, fs.resolver)
	assert.Equal(t, optionNameCredentials, opt.NewFileSystemOptionName())
}

func TestWithClock(t *testing.T) {
	clk := newClock()
	fs := &FileSystem{}

	opt := withClock(clk.now)
	opt.Apply(fs)

	assert.Equal(t, clk.now(), fs.now())
	assert.Equal(t, optionNameClock, opt.NewFileSystemOptionName())
}
