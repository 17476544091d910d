package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryNickAvailability(t *testing.T) {
	r := NewRegistry()
	alice := &Client{id: 1, invites: map[string]struct{}{}}
	bob := &Client{id: 2, invites: map[string]struct{}{}}
	r.AddClient(alice)
	r.AddClient(bob)

	require.True(t, r.NickAvailable("alice", alice))
	r.SetNick(alice, "alice")
	require.False(t, r.NickAvailable("alice", bob))
	require.True(t, r.NickAvailable("alice", alice))

	found, ok := r.ClientByNick("alice")
	require.True(t, ok)
	require.Same(t, alice, found)
}

func TestRegistrySetNickReleasesOld(t *testing.T) {
	r := NewRegistry()
	alice := &Client{id: 1, invites: map[string]struct{}{}}
	r.AddClient(alice)

	r.SetNick(alice, "alice")
	r.SetNick(alice, "alice2")

	_, ok := r.ClientByNick("alice")
	require.False(t, ok)
	found, ok := r.ClientByNick("alice2")
	require.True(t, ok)
	require.Same(t, alice, found)
}

func TestRegistryRemoveClient(t *testing.T) {
	r := NewRegistry()
	alice := &Client{id: 1, invites: map[string]struct{}{}}
	r.AddClient(alice)
	r.SetNick(alice, "alice")

	r.RemoveClient(alice)

	require.Empty(t, r.Clients())
	_, ok := r.ClientByNick("alice")
	require.False(t, ok)
}

func TestRegistryChannelsOf(t *testing.T) {
	r := NewRegistry()
	alice := &Client{id: 1, invites: map[string]struct{}{}}
	ch := NewChannel("#chan", 0)
	ch.AddMember(alice)
	r.CreateChannel(ch)

	chans := r.ChannelsOf(alice)
	require.Len(t, chans, 1)
	require.Equal(t, "#chan", chans[0].Name)

	r.RemoveChannel("#chan")
	_, ok := r.Channel("#chan")
	require.False(t, ok)
}
