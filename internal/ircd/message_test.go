package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageEncode(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "numeric with trailing text",
			msg:  Welcome("ircserver", "alice"),
			want: ":ircserver 001 alice :Connected to IRC network successfully!\r\n",
		},
		{
			name: "verb echo with no trailing colon needed",
			msg:  Message{Prefix: "alice!~alice@host", Command: "JOIN", Params: []string{"#chan"}},
			want: ":alice!~alice@host JOIN #chan\r\n",
		},
		{
			name: "empty last param gets colon",
			msg:  Message{Command: "PRIVMSG", Params: []string{"#chan", ""}},
			want: "PRIVMSG #chan :\r\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.msg.Encode())
		})
	}
}

func TestMessageEncodeTruncates(t *testing.T) {
	long := make([]byte, MaxLineLength)
	for i := range long {
		long[i] = 'x'
	}
	msg := Message{Command: "PRIVMSG", Params: []string{"#chan", string(long)}}
	encoded := msg.Encode()
	require.LessOrEqual(t, len(encoded), MaxLineLength)
	require.True(t, len(encoded) >= 2 && encoded[len(encoded)-2:] == "\r\n")
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"", Command{}},
		{"   ", Command{}},
		{"nick alice", Command{Verb: "NICK", Params: []string{"alice"}}},
		{
			"PRIVMSG #chan :hello there world",
			Command{Verb: "PRIVMSG", Params: []string{"#chan", "hello there world"}},
		},
		{
			"USER alice 0 * :Alice A.",
			Command{Verb: "USER", Params: []string{"alice", "0", "*", "Alice A."}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			require.Equal(t, tc.want, Tokenize(tc.line))
		})
	}
}

func TestTokenizeLeadingColonOnFirstToken(t *testing.T) {
	cmd := Tokenize(":justcolon")
	require.Equal(t, "JUSTCOLON", cmd.Verb)
	require.Empty(t, cmd.Params)
}

// TestTokenizeReassembleRoundTrip checks the law from section 8: tokenize
// composed with reassemble is the identity on well-formed lines.
func TestTokenizeReassembleRoundTrip(t *testing.T) {
	lines := []string{
		"NICK alice",
		"USER alice 0 * :Alice A.",
		"PRIVMSG #chan :hello there world",
		"JOIN #chan,#other",
	}

	for _, line := range lines {
		cmd := Tokenize(line)
		require.Equal(t, line, Reassemble(cmd.Verb, cmd.Params))
	}
}
