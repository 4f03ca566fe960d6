package inotify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactorium/nix/inotify"
)

func TestEventMaskString(t *testing.T) {
	cases := []struct {
		mask inotify.EventMask
		want string
	}{
		{0, "0"},
		{inotify.Create, "IN_CREATE"},
		{inotify.Create | inotify.IsDir, "IN_CREATE|IN_ISDIR"},
		{inotify.Close, "IN_CLOSE_WRITE|IN_CLOSE_NOWRITE"},
		{inotify.Ignored | 0x100000, "IN_IGNORED|0x100000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.mask.String())
	}
}

func TestEventMaskSetOps(t *testing.T) {
	m := inotify.Create.Union(inotify.Delete)
	assert.True(t, m.Has(inotify.Create))
	assert.False(t, m.Has(inotify.Create|inotify.Modify))
	assert.True(t, m.Any(inotify.Create|inotify.Modify))
	assert.Equal(t, inotify.Delete, m.Without(inotify.Create))
	assert.Equal(t, inotify.Create, m.Intersect(inotify.Create|inotify.Modify))
	assert.Equal(t, inotify.EventMask(0xfff), inotify.AllEvents)
	assert.Equal(t, inotify.MovedFrom|inotify.MovedTo, inotify.Move)
}

func TestParseMask(t *testing.T) {
	m, err := inotify.ParseMask("create, IN_DELETE|moved_to")
	require.NoError(t, err)
	assert.Equal(t, inotify.Create|inotify.Delete|inotify.MovedTo, m)

	m, err = inotify.ParseMask("close,move,oneshot")
	require.NoError(t, err)
	assert.Equal(t, inotify.Close|inotify.Move|inotify.OneShot, m)

	m, err = inotify.ParseMask("all")
	require.NoError(t, err)
	assert.Equal(t, inotify.AllEvents, m)

	m, err = inotify.ParseMask("")
	require.NoError(t, err)
	assert.Zero(t, m)

	_, err = inotify.ParseMask("create,bogus")
	assert.ErrorContains(t, err, `"bogus"`)
}

func TestParseMaskRoundTrip(t *testing.T) {
	m := inotify.Create | inotify.CloseWrite | inotify.DeleteSelf | inotify.DontFollow
	back, err := inotify.ParseMask(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestCreateFlagsString(t *testing.T) {
	assert.Equal(t, "0", inotify.CreateFlags(0).String())
	assert.Equal(t, "IN_NONBLOCK|IN_CLOEXEC", inotify.NonBlock.Union(inotify.CloseOnExec).String())
}
