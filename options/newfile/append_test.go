package newfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c2fo/ftpvfs/options/newfile"
)

func TestWithAppend(t *testing.T) {
	opt := newfile.WithAppend()

	a, ok := opt.(*newfile.Append)
	require.Truef(t, ok, "expected `*newfile.Append`, got %T", opt)
	assert.Equal(t, "newFileAppend", a.NewFileOptionName())
}
