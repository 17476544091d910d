package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidNick(t *testing.T) {
	cases := []struct {
		nick string
		want bool
	}{
		{"alice", true},
		{"Alice_99", true},
		{"a-b[c]{d}\\^", true},
		{"", false},
		{"9alice", false},
		{"-alice", false},
		{"al ice", false},
		{"al.ice", false},
	}

	for _, tc := range cases {
		t.Run(tc.nick, func(t *testing.T) {
			require.Equal(t, tc.want, ValidNick(tc.nick))
		})
	}
}

func TestClientLoggedIn(t *testing.T) {
	c := &Client{invites: map[string]struct{}{}}
	require.False(t, c.LoggedIn())

	c.PassOK = true
	require.False(t, c.LoggedIn())

	c.Nickname = "alice"
	require.False(t, c.LoggedIn())

	c.Username = "alice"
	require.True(t, c.LoggedIn())
}

func TestClientInvites(t *testing.T) {
	c := &Client{invites: map[string]struct{}{}}
	require.False(t, c.Invited("#chan"))

	c.Invite("#chan")
	require.True(t, c.Invited("#chan"))

	c.ConsumeInvite("#chan")
	require.False(t, c.Invited("#chan"))
}

func TestClientDisplayNick(t *testing.T) {
	c := &Client{invites: map[string]struct{}{}}
	require.Equal(t, "*", c.DisplayNick())

	c.Nickname = "alice"
	require.Equal(t, "alice", c.DisplayNick())
}
