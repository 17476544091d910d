package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(Config{Password: "pw", ServerName: "ircserver"})
}

func newDispatchClient(id uint64) *Client {
	return &Client{
		id:        id,
		invites:   map[string]struct{}{},
		writeChan: make(chan Message, 32),
	}
}

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case m := <-c.writeChan:
			out = append(out, m)
		default:
			return out
		}
	}
}

func registerClient(t *testing.T, s *Server, c *Client, nick string) {
	t.Helper()
	s.registry.AddClient(c)
	s.dispatch(c, Command{Verb: "PASS", Params: []string{"pw"}})
	s.dispatch(c, Command{Verb: "NICK", Params: []string{nick}})
	s.dispatch(c, Command{Verb: "USER", Params: []string{nick, "0", "*", "Real Name"}})
	require.True(t, c.LoggedIn())
	drain(c)
}

func TestDispatchUnregisteredNonRegistrationVerb(t *testing.T) {
	s := newTestServer()
	c := newDispatchClient(1)
	s.registry.AddClient(c)

	s.dispatch(c, Command{Verb: "JOIN", Params: []string{"#chan"}})

	msgs := drain(c)
	require.Len(t, msgs, 1)
	require.Equal(t, ErrNotRegistered, msgs[0].Command)
}

func TestDispatchUnknownCommandAfterRegistration(t *testing.T) {
	s := newTestServer()
	c := newDispatchClient(1)
	registerClient(t, s, c, "alice")

	s.dispatch(c, Command{Verb: "FROB", Params: nil})

	msgs := drain(c)
	require.Len(t, msgs, 1)
	require.Equal(t, ErrUnknownCommand, msgs[0].Command)
}

func TestDispatchEmptyVerbIsNoop(t *testing.T) {
	s := newTestServer()
	c := newDispatchClient(1)
	s.registry.AddClient(c)

	s.dispatch(c, Command{})

	require.Empty(t, drain(c))
}

func TestRegistrationHappyPath(t *testing.T) {
	s := newTestServer()
	c := newDispatchClient(1)
	s.registry.AddClient(c)

	s.dispatch(c, Command{Verb: "PASS", Params: []string{"pw"}})
	s.dispatch(c, Command{Verb: "NICK", Params: []string{"alice"}})
	require.Empty(t, drain(c))

	s.dispatch(c, Command{Verb: "USER", Params: []string{"alice", "0", "*", "Alice A."}})

	msgs := drain(c)
	require.Len(t, msgs, 1)
	require.Equal(t, ReplyWelcome, msgs[0].Command)
	require.Equal(t, "alice", msgs[0].Params[0])
}

func TestPassWrongPassword(t *testing.T) {
	s := newTestServer()
	c := newDispatchClient(1)
	s.registry.AddClient(c)

	s.dispatch(c, Command{Verb: "PASS", Params: []string{"wrong"}})

	msgs := drain(c)
	require.Len(t, msgs, 1)
	require.Equal(t, ErrPasswdMismatch, msgs[0].Command)
	require.False(t, c.PassOK)
}
