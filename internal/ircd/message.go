package ircd

import (
	"fmt"
	"strings"
)

// MaxLineLength is the maximum protocol message length we will emit,
// including the trailing CRLF. Outgoing lines longer than this are
// truncated so we never write more than a peer expects to read.
const MaxLineLength = 512

// Message holds a single outgoing protocol line: an optional prefix, a
// command (numeric or verb), and its parameters. The last parameter is
// sent as the IRC "trailing" parameter whenever it contains a space, is
// empty, or itself starts with ':'.
type Message struct {
	Prefix  string
	Command string
	Params  []string
}

// Encode renders m as a single CRLF-terminated protocol line.
func (m Message) Encode() string {
	s := ""
	if len(m.Prefix) > 0 {
		s += ":" + m.Prefix + " "
	}
	s += m.Command

	for i, param := range m.Params {
		last := i == len(m.Params)-1
		needsColon := strings.IndexByte(param, ' ') != -1 ||
			param == "" ||
			(len(param) > 0 && param[0] == ':')
		if needsColon && last {
			param = ":" + param
		}
		s += " " + param
	}

	s += "\r\n"

	if len(s) > MaxLineLength {
		s = s[:MaxLineLength-2] + "\r\n"
	}

	return s
}

// Command holds a single incoming protocol line, already split into a
// verb and positional arguments by Tokenize.
type Command struct {
	Verb   string
	Params []string
}

// Tokenize splits a raw line (CR/LF already stripped) into a verb and its
// arguments per section 4.C: split on ASCII whitespace, except that a
// token beginning with ':' consumes the remainder of the line, spaces
// included, as a single trailing parameter. The first token becomes the
// verb, folded to uppercase. An empty line yields a zero-value Command.
func Tokenize(line string) Command {
	var params []string
	rest := line

	const asciiSpace = " \t\n\v\f\r"

	for len(rest) > 0 {
		for len(rest) > 0 && strings.IndexByte(asciiSpace, rest[0]) != -1 {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			break
		}

		if rest[0] == ':' {
			params = append(params, rest[1:])
			rest = ""
			break
		}

		if idx := strings.IndexAny(rest, asciiSpace); idx != -1 {
			params = append(params, rest[:idx])
			rest = rest[idx+1:]
		} else {
			params = append(params, rest)
			rest = ""
		}
	}

	if len(params) == 0 {
		return Command{}
	}

	return Command{
		Verb:   strings.ToUpper(params[0]),
		Params: params[1:],
	}
}

// Reassemble is the inverse of Tokenize: it reconstructs a wire-form line
// (without CRLF) from a verb and its positional arguments, adding a
// leading ':' to the final argument when it contains a space or is
// empty. It exists mainly so tests can state
// the tokenize/reassemble round-trip law from section 8.
func Reassemble(verb string, params []string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, verb)
	for i, p := range params {
		if i == len(params)-1 && (strings.IndexByte(p, ' ') != -1 || p == "") {
			p = ":" + p
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// nickUhost builds the "nick!~user@host" form used to prefix
// user-originated verb echoes.
func nickUhost(nick, user, host string) string {
	return fmt.Sprintf("%s!~%s@%s", nick, user, host)
}
