package ftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRemote(t *testing.T) {
	tests := []struct {
		in       string
		amiga    bool
		expected string
	}{
		{"/pub/file.txt", false, "/pub/file.txt"},
		{"/pub/dir/.", false, "/pub/dir/."},
		{"/", false, "/"},
		{"/vol:/dir/.", true, "vol:dir"},
		{"///vol:/a/b", true, "vol:a/b"},
		{"/", true, "."},
		{"", true, "."},
		{"/work/x:/y:/z", true, "work/x:y:/z"},
		{"/dir/./", true, "dir/./"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, toRemote(tt.in, tt.amiga), "toRemote(%q, %v)", tt.in, tt.amiga)
	}
}

func TestToRemoteIdempotentForOrdinaryServers(t *testing.T) {
	for _, p := range []string{"/", "/a", "/a/b/.", "/with space/x", "relative", "//double", "/vol:/x"} {
		once := toRemote(p, false)
		assert.Equal(t, once, toRemote(once, false), p)
	}
}
