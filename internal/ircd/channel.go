package ircd

import "strings"

// Modes holds the fixed 5-tuple of channel mode bits described in
// section 3: invite-only, topic-locked, key-required, "any operator
// present", and limit-enforced.
type Modes struct {
	InviteOnly  bool // i
	TopicLocked bool // t
	KeyRequired bool // k
	AnyOperator bool // o
	LimitSet    bool // l
}

// String renders the active modes as "+<letters>", excluding 'o' since
// operator presence is not part of the advertised channel mode string.
// Empty modes render as "+".
func (m Modes) String() string {
	var b strings.Builder
	b.WriteByte('+')
	if m.InviteOnly {
		b.WriteByte('i')
	}
	if m.TopicLocked {
		b.WriteByte('t')
	}
	if m.KeyRequired {
		b.WriteByte('k')
	}
	if m.LimitSet {
		b.WriteByte('l')
	}
	return b.String()
}

// Channel is the per-channel state described in section 3. It is
// created on the first JOIN to a name and destroyed once its last
// occupant leaves.
type Channel struct {
	Name string

	Topic       string
	TopicAuthor string
	// TopicTime is formatted HH:MM:SS local time, per section 6.
	TopicTime string

	// members and operators are kept as ordered slices, not maps, so
	// NAMES listings and JOIN broadcast order are reproducible, per
	// section 4.F's requirement to preserve observable iteration order.
	members   []*Client
	operators []*Client

	Modes Modes
	Key   string
	Limit int

	CreatedAt int64
}

// NewChannel creates an empty channel record. The caller is responsible
// for adding the creator as the first operator.
func NewChannel(name string, createdAt int64) *Channel {
	return &Channel{Name: name, CreatedAt: createdAt}
}

// IsMember reports whether c is a regular (non-operator) member.
func (ch *Channel) IsMember(c *Client) bool {
	return indexOf(ch.members, c) != -1
}

// IsOperator reports whether c currently holds operator status.
func (ch *Channel) IsOperator(c *Client) bool {
	return indexOf(ch.operators, c) != -1
}

// IsOccupant reports whether c is present in the channel at all.
func (ch *Channel) IsOccupant(c *Client) bool {
	return ch.IsMember(c) || ch.IsOperator(c)
}

// Occupants returns the current member count, including operators.
func (ch *Channel) Occupants() int {
	return len(ch.members) + len(ch.operators)
}

// Empty reports whether the channel has no occupants left; the caller
// must destroy it in this state per the section 3 invariant.
func (ch *Channel) Empty() bool {
	return ch.Occupants() == 0
}

// AddOperator adds c to the channel as an operator. It is a no-op if c
// is already an occupant.
func (ch *Channel) AddOperator(c *Client) {
	if ch.IsOccupant(c) {
		return
	}
	ch.operators = append(ch.operators, c)
}

// AddMember adds c to the channel as a regular member. It is a no-op if
// c is already an occupant.
func (ch *Channel) AddMember(c *Client) {
	if ch.IsOccupant(c) {
		return
	}
	ch.members = append(ch.members, c)
}

// Promote moves c from member to operator. It reports whether c was a
// regular member (promotion only succeeds from that state).
func (ch *Channel) Promote(c *Client) bool {
	idx := indexOf(ch.members, c)
	if idx == -1 {
		return false
	}
	ch.members = removeAt(ch.members, idx)
	ch.operators = append(ch.operators, c)
	ch.Modes.AnyOperator = true
	return true
}

// Demote moves c from operator to member. It reports whether c was an
// operator (demotion only succeeds from that state).
func (ch *Channel) Demote(c *Client) bool {
	idx := indexOf(ch.operators, c)
	if idx == -1 {
		return false
	}
	ch.operators = removeAt(ch.operators, idx)
	ch.members = append(ch.members, c)
	ch.Modes.AnyOperator = false
	return true
}

// RemoveOccupant removes c from whichever of members/operators it is
// in. It is a no-op if c is not present.
func (ch *Channel) RemoveOccupant(c *Client) {
	if idx := indexOf(ch.members, c); idx != -1 {
		ch.members = removeAt(ch.members, idx)
		return
	}
	if idx := indexOf(ch.operators, c); idx != -1 {
		ch.operators = removeAt(ch.operators, idx)
	}
}

// MemberList concatenates "@nick" for each operator and "nick" for each
// regular member, operators first, space separated, per section 4.D.
func (ch *Channel) MemberList() string {
	names := make([]string, 0, ch.Occupants())
	for _, op := range ch.operators {
		names = append(names, "@"+op.Nickname)
	}
	for _, m := range ch.members {
		names = append(names, m.Nickname)
	}
	return strings.Join(names, " ")
}

// Snapshot returns a stable copy of operators-then-members, so
// broadcasting is safe even if a handler subsequently mutates
// membership (section 5's snapshot-before-mutate rule).
func (ch *Channel) Snapshot() []*Client {
	out := make([]*Client, 0, ch.Occupants())
	out = append(out, ch.operators...)
	out = append(out, ch.members...)
	return out
}

// Broadcast delivers msg to every current occupant (operators then
// members), via send.
func (ch *Channel) Broadcast(msg Message, send func(*Client, Message)) {
	for _, c := range ch.Snapshot() {
		send(c, msg)
	}
}

// BroadcastExcept delivers msg to every occupant other than except. It
// is used to echo a client's own action to the rest of the channel.
func (ch *Channel) BroadcastExcept(except *Client, msg Message, send func(*Client, Message)) {
	for _, c := range ch.Snapshot() {
		if c == except {
			continue
		}
		send(c, msg)
	}
}

// BroadcastFunc delivers a per-recipient message (built fresh for each
// occupant, e.g. so a numeric reply's subject field is the recipient's
// own nickname) to every occupant other than except.
func (ch *Channel) BroadcastFunc(except *Client, build func(*Client) Message, send func(*Client, Message)) {
	for _, c := range ch.Snapshot() {
		if c == except {
			continue
		}
		send(c, build(c))
	}
}

func indexOf(list []*Client, c *Client) int {
	for i, v := range list {
		if v == c {
			return i
		}
	}
	return -1
}

func removeAt(list []*Client, idx int) []*Client {
	return append(list[:idx], list[idx+1:]...)
}

// maxTopicLength bounds TOPIC bodies. Arbitrary, chosen low enough that
// a topic plus envelope never approaches MaxLineLength.
const maxTopicLength = 300

// channelNameValid checks a channel name for validity per section 3: it
// must start with '#' and contain no whitespace or comma.
func channelNameValid(name string) bool {
	if len(name) < 2 || name[0] != '#' {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case ' ', '\t', ',':
			return false
		}
	}
	return true
}
