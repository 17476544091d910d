package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWelcomeScenarioS1 pins the exact wire text from the registration
// happy-path scenario: server password pw, client sends PASS/NICK/USER,
// server replies with exactly one 001 line.
func TestWelcomeScenarioS1(t *testing.T) {
	msg := Welcome("ircserver", "alice")
	require.Equal(t,
		":ircserver 001 alice :Connected to IRC network successfully!\r\n",
		msg.Encode(),
	)
}

// TestNicknameInUseScenarioS2 pins the exact wire text from the nickname
// collision scenario.
func TestNicknameInUseScenarioS2(t *testing.T) {
	msg := NicknameInUse("ircserver", "alice")
	require.Equal(t,
		":ircserver 433 alice :Nickname already taken\r\n",
		msg.Encode(),
	)
}

func TestSubjectPlaceholder(t *testing.T) {
	require.Equal(t, "*", subject(""))
	require.Equal(t, "alice", subject("alice"))
}

func TestNotRegisteredUsesStar(t *testing.T) {
	msg := NotRegistered("ircserver", "")
	require.Equal(t, ":ircserver 451 * :Registration required!\r\n", msg.Encode())
}

func TestEnvelopeFormat(t *testing.T) {
	msg := Envelope("alice", "alice", "host.example", "JOIN", "#chan")
	require.Equal(t, "alice!~alice@host.example", msg.Prefix)
	require.Equal(t, "JOIN", msg.Command)
	require.Equal(t, []string{"#chan"}, msg.Params)
}
