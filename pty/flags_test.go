package pty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cactorium/nix/pty"
)

func TestOpenFlagsSetOperations(t *testing.T) {
	f := pty.ReadWrite.Union(pty.NoCtty)

	assert.True(t, f.Has(pty.ReadWrite))
	assert.True(t, f.Has(pty.ReadWrite|pty.NoCtty))
	assert.False(t, f.Has(pty.ReadWrite|pty.NonBlock))
	assert.Equal(t, pty.NoCtty, f.Intersect(pty.NoCtty|pty.CloseOnExec))
	assert.Equal(t, pty.ReadWrite, f.Without(pty.NoCtty))
}

func TestOpenFlagsString(t *testing.T) {
	assert.Equal(t, "O_RDONLY", pty.OpenFlags(0).String())
	assert.Equal(t, "O_RDWR|O_NOCTTY|O_CLOEXEC", (pty.ReadWrite | pty.NoCtty | pty.CloseOnExec).String())
	assert.Equal(t, "O_NONBLOCK", pty.NonBlock.String())
}
