package ircd

// Registry is the process-wide index described in section 4.F: clients
// by connection, clients by nickname, and channels by name. Lookups are
// simple maps/slices — the collections involved are small — but client
// order is preserved because it is observable (readiness sweep order).
type Registry struct {
	clientOrder []*Client
	clients     map[uint64]*Client

	nicks map[string]*Client

	channels map[string]*Channel
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		clients:  make(map[uint64]*Client),
		nicks:    make(map[string]*Client),
		channels: make(map[string]*Channel),
	}
}

// AddClient registers a newly accepted connection.
func (r *Registry) AddClient(c *Client) {
	r.clients[c.id] = c
	r.clientOrder = append(r.clientOrder, c)
}

// RemoveClient drops c from every index: the client table and, if it
// had claimed one, the nickname table. It does not touch channel
// membership; callers must part the client from its channels first.
func (r *Registry) RemoveClient(c *Client) {
	delete(r.clients, c.id)
	if c.Nickname != "" {
		if held, ok := r.nicks[c.Nickname]; ok && held == c {
			delete(r.nicks, c.Nickname)
		}
	}
	for i, v := range r.clientOrder {
		if v == c {
			r.clientOrder = append(r.clientOrder[:i], r.clientOrder[i+1:]...)
			break
		}
	}
}

// Clients returns a snapshot of connected clients in connection order.
func (r *Registry) Clients() []*Client {
	out := make([]*Client, len(r.clientOrder))
	copy(out, r.clientOrder)
	return out
}

// ClientByNick looks up a client by its current nickname. Nicknames are
// compared octet-exact per the spec's open question resolution (see
// DESIGN.md).
func (r *Registry) ClientByNick(nick string) (*Client, bool) {
	c, ok := r.nicks[nick]
	return c, ok
}

// NickAvailable reports whether nick is free for use by requester (a
// client renaming to its own current nickname is always permitted).
func (r *Registry) NickAvailable(nick string, requester *Client) bool {
	held, ok := r.nicks[nick]
	if !ok {
		return true
	}
	return held == requester
}

// SetNick claims nick for c, releasing any nickname c previously held.
func (r *Registry) SetNick(c *Client, nick string) {
	if c.Nickname != "" {
		if held, ok := r.nicks[c.Nickname]; ok && held == c {
			delete(r.nicks, c.Nickname)
		}
	}
	c.Nickname = nick
	r.nicks[nick] = c
}

// Channel looks up a channel by its exact on-the-wire name (including
// the leading '#'); channel names are compared octet-exact.
func (r *Registry) Channel(name string) (*Channel, bool) {
	ch, ok := r.channels[name]
	return ch, ok
}

// CreateChannel registers a new channel. Registering a channel is the
// act of inserting it into the name index, per section 4.F.
func (r *Registry) CreateChannel(ch *Channel) {
	r.channels[ch.Name] = ch
}

// RemoveChannel drops a channel from the name index. Callers must only
// do this once the channel is empty, per the section 3 invariant.
func (r *Registry) RemoveChannel(name string) {
	delete(r.channels, name)
}

// ChannelsOf returns every channel c currently occupies. The order is
// not defined: it follows Go map iteration over r.channels, which can
// differ from one call to the next.
func (r *Registry) ChannelsOf(c *Client) []*Channel {
	var out []*Channel
	for _, ch := range r.channels {
		if ch.IsOccupant(c) {
			out = append(out, ch)
		}
	}
	return out
}
