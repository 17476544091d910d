package ircd

import "net"

// Client is the per-connection identity described in section 3. One
// exists from accept to close; the event loop owns its lifecycle.
type Client struct {
	// id uniquely identifies the connection for the lifetime of the
	// process. It stands in for the "socket" in section 3: unique while
	// open, never reused.
	id uint64

	conn net.Conn

	// ip is the textual peer address, set at accept and never changed.
	ip string

	Nickname string
	Username string
	RealName string

	// PassOK is true iff PASS succeeded before NICK/USER completed
	// registration.
	PassOK bool

	// invites is the set of channel names (canonical case, i.e. as
	// written on the wire since this spec compares channel names
	// octet-exact) this client has been INVITEd to and not yet
	// consumed by a matching JOIN.
	invites map[string]struct{}

	// quitting is set by teardown (on QUIT, a transport error, or
	// server shutdown). The socket is closed in the same teardown call,
	// not deferred to a later sweep.
	quitting bool

	buffer LineBuffer

	// writeChan is drained by this client's write goroutine. Section
	// 4.G/4.H handlers never write to the socket directly: they hand
	// Messages to the owning Server, which in turn queues them here, so
	// per-client write ordering is preserved even though reads and
	// writes run on separate goroutines.
	writeChan chan Message
}

func newClient(id uint64, conn net.Conn) *Client {
	ip := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return &Client{
		id:        id,
		conn:      conn,
		ip:        ip,
		invites:   make(map[string]struct{}),
		writeChan: make(chan Message, 256),
	}
}

// LoggedIn reports whether the client has completed the registration
// handshake. It is always recomputed from the three underlying fields,
// per the section 3 invariant, never written directly.
func (c *Client) LoggedIn() bool {
	return c.PassOK && c.Nickname != "" && c.Username != ""
}

// DisplayNick is the nickname shown in reply envelopes: the client's
// nickname, or "*" before one is set.
func (c *Client) DisplayNick() string {
	return subject(c.Nickname)
}

// Uhost renders this client's "nick!~user@host" envelope prefix.
func (c *Client) Uhost() string {
	return nickUhost(c.Nickname, c.Username, c.ip)
}

// Invited reports whether channel is in this client's pending invite set.
func (c *Client) Invited(channel string) bool {
	_, ok := c.invites[channel]
	return ok
}

// Invite records an invitation to channel.
func (c *Client) Invite(channel string) {
	c.invites[channel] = struct{}{}
}

// ConsumeInvite removes channel from the pending invite set, if present.
func (c *Client) ConsumeInvite(channel string) {
	delete(c.invites, channel)
}

// isAlpha reports whether b is an ASCII letter.
func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isNickSpecial reports whether b is one of the extra octets RFC-style
// nicknames allow after the first character.
func isNickSpecial(b byte) bool {
	switch b {
	case '-', '_', '[', ']', '\\', '^', '{', '}':
		return true
	}
	return false
}

// ValidNick validates a nickname per section 4.D: non-empty, first octet
// alphabetic, remaining octets alphanumeric or one of "-_[]\^{}".
func ValidNick(nick string) bool {
	if len(nick) == 0 {
		return false
	}
	if !isAlpha(nick[0]) {
		return false
	}
	for i := 1; i < len(nick); i++ {
		b := nick[i]
		if isAlpha(b) || isDigit(b) || isNickSpecial(b) {
			continue
		}
		return false
	}
	return true
}
