package ircd

import (
	"strconv"
	"strings"
	"time"
)

// registrationHandlerFuncs returns the PASS/NICK/USER/QUIT table.
func (s *Server) registrationHandlerFuncs() map[string]func(*Client, []string) {
	return map[string]func(*Client, []string){
		"PASS": s.handlePass,
		"NICK": s.handleNick,
		"USER": s.handleUser,
		"QUIT": s.handleQuit,
	}
}

// channelOpHandlerFuncs returns the JOIN/PART/PRIVMSG/TOPIC/INVITE/
// KICK/MODE table.
func (s *Server) channelOpHandlerFuncs() map[string]func(*Client, []string) {
	return map[string]func(*Client, []string){
		"JOIN":    s.handleJoin,
		"PART":    s.handlePart,
		"PRIVMSG": s.handlePrivmsg,
		"TOPIC":   s.handleTopic,
		"INVITE":  s.handleInvite,
		"KICK":    s.handleKick,
		"MODE":    s.handleMode,
	}
}

// --- PASS ---

func (s *Server) handlePass(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}
	if c.PassOK || c.LoggedIn() {
		s.send(c, AlreadyRegistered(s.Config.ServerName, c.Nickname))
		return
	}
	if params[0] != s.Config.Password {
		s.send(c, PasswordMismatch(s.Config.ServerName, c.Nickname))
		return
	}
	c.PassOK = true
}

// --- NICK ---

func (s *Server) handleNick(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NoNicknameGiven(s.Config.ServerName, c.Nickname))
		return
	}
	nick := params[0]

	if !ValidNick(nick) {
		s.send(c, ErroneousNickname(s.Config.ServerName, nick))
		return
	}
	if !s.registry.NickAvailable(nick, c) {
		s.send(c, NicknameInUse(s.Config.ServerName, nick))
		return
	}
	if !c.PassOK {
		s.send(c, NotRegistered(s.Config.ServerName, c.Nickname))
		return
	}
	if nick == c.Nickname {
		// No-op: renaming to the same nickname is silent.
		return
	}

	wasLoggedIn := c.LoggedIn()
	oldNick := c.Nickname

	if wasLoggedIn {
		envelope := Envelope(oldNick, c.Username, c.ip, "NICK", nick)
		told := map[uint64]bool{}
		for _, ch := range s.registry.ChannelsOf(c) {
			ch.BroadcastExcept(c, envelope, func(to *Client, msg Message) {
				if told[to.id] {
					return
				}
				told[to.id] = true
				s.send(to, msg)
			})
		}
	}

	s.registry.SetNick(c, nick)

	if wasLoggedIn {
		s.send(c, Envelope(oldNick, c.Username, c.ip, "NICK", nick))
	}

	if !wasLoggedIn && c.LoggedIn() {
		s.send(c, Welcome(s.Config.ServerName, c.Nickname))
	}
}

// --- USER ---

func (s *Server) handleUser(c *Client, params []string) {
	if len(params) < 4 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}
	if !c.PassOK {
		s.send(c, NotRegistered(s.Config.ServerName, c.Nickname))
		return
	}
	if c.LoggedIn() || c.Username != "" {
		s.send(c, AlreadyRegistered(s.Config.ServerName, c.Nickname))
		return
	}

	c.Username = params[0]
	c.RealName = params[3]

	if c.LoggedIn() {
		s.send(c, Welcome(s.Config.ServerName, c.Nickname))
	}
}

// --- JOIN ---

func (s *Server) handleJoin(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}

	names := strings.Split(params[0], ",")
	if len(names) > maxChannelsPerJoin {
		s.send(c, TooManyTargets(s.Config.ServerName, c.Nickname))
		return
	}

	var keys []string
	if len(params) > 1 {
		keys = strings.Split(params[1], ",")
	}

	for i, name := range names {
		key := ""
		if i < len(keys) {
			key = keys[i]
		}
		s.joinOne(c, name, key)
	}
}

func (s *Server) joinOne(c *Client, name, key string) {
	if !channelNameValid(name) {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}

	ch, exists := s.registry.Channel(name)
	if !exists {
		ch = NewChannel(name, time.Now().Unix())
		ch.AddOperator(c)
		s.registry.CreateChannel(ch)

		ch.Broadcast(Envelope(c.Nickname, c.Username, c.ip, "JOIN", name), s.send)
		s.sendNames(c, ch)
		return
	}

	if ch.IsOccupant(c) {
		// Open question in section 9: both silent success and 443 are
		// attested in the original. We choose silent success here,
		// consistent with JOIN's idempotence law in section 8.
		return
	}

	if len(s.registry.ChannelsOf(c)) >= maxChannelsPerClient {
		s.send(c, TooManyChannels(s.Config.ServerName, c.Nickname, name))
		return
	}
	if ch.Modes.KeyRequired && ch.Key != key {
		s.send(c, BadChannelKey(s.Config.ServerName, c.Nickname, name))
		return
	}
	if ch.Modes.InviteOnly && !c.Invited(name) {
		s.send(c, InviteOnlyChan(s.Config.ServerName, c.Nickname, name))
		return
	}
	if ch.Modes.LimitSet && ch.Occupants() >= ch.Limit {
		s.send(c, ChannelIsFull(s.Config.ServerName, c.Nickname, name))
		return
	}

	ch.AddMember(c)
	c.ConsumeInvite(name)

	ch.Broadcast(Envelope(c.Nickname, c.Username, c.ip, "JOIN", name), s.send)
	s.sendNames(c, ch)

	if ch.Topic != "" {
		s.send(c, Topic(s.Config.ServerName, c.Nickname, name, ch.Topic))
	}
}

func (s *Server) sendNames(c *Client, ch *Channel) {
	s.send(c, NamesReply(s.Config.ServerName, c.Nickname, ch.Name, ch.MemberList()))
	s.send(c, EndOfNames(s.Config.ServerName, c.Nickname, ch.Name))
}

// --- PART ---

func (s *Server) handlePart(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}

	reason := "Leaving"
	if len(params) > 1 {
		reason = params[1]
	}

	for _, name := range strings.Split(params[0], ",") {
		s.partOne(c, name, reason)
	}
}

func (s *Server) partOne(c *Client, name, reason string) {
	ch, exists := s.registry.Channel(name)
	if !exists {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOccupant(c) {
		s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, name))
		return
	}

	ch.Broadcast(Envelope(c.Nickname, c.Username, c.ip, "PART", name, reason), s.send)
	ch.RemoveOccupant(c)

	if ch.Empty() {
		s.registry.RemoveChannel(name)
	}
}

// --- PRIVMSG ---

func (s *Server) handlePrivmsg(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NoRecipient(s.Config.ServerName, c.Nickname))
		return
	}

	targets := strings.Split(params[0], ",")
	if len(targets) > maxPrivmsgTargets {
		s.send(c, TooManyTargets(s.Config.ServerName, c.Nickname))
		return
	}

	if len(params) < 2 || params[1] == "" {
		s.send(c, NoTextToSend(s.Config.ServerName, c.Nickname))
		return
	}
	text := params[1]

	for _, target := range targets {
		s.privmsgOne(c, target, text)
	}
}

func (s *Server) privmsgOne(c *Client, target, text string) {
	if strings.HasPrefix(target, "#") {
		ch, exists := s.registry.Channel(target)
		if !exists {
			s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, target))
			return
		}
		if !ch.IsOccupant(c) {
			s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, target))
			return
		}
		ch.BroadcastExcept(c, Envelope(c.Nickname, c.Username, c.ip, "PRIVMSG", target, text), s.send)
		return
	}

	targetClient, exists := s.registry.ClientByNick(target)
	if !exists {
		s.send(c, NoSuchNick(s.Config.ServerName, c.Nickname, target))
		return
	}
	s.send(targetClient, Envelope(c.Nickname, c.Username, c.ip, "PRIVMSG", target, text))
}

// --- TOPIC ---

func (s *Server) handleTopic(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}
	name := params[0]

	if !channelNameValid(name) {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	ch, exists := s.registry.Channel(name)
	if !exists {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOccupant(c) {
		s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, name))
		return
	}

	if len(params) < 2 {
		if ch.Topic == "" {
			s.send(c, NoTopic(s.Config.ServerName, c.Nickname, name))
			return
		}
		s.send(c, Topic(s.Config.ServerName, c.Nickname, name, ch.Topic))
		s.send(c, TopicWhoTime(s.Config.ServerName, c.Nickname, name, ch.TopicAuthor, ch.TopicTime))
		return
	}

	if ch.Modes.TopicLocked && !ch.IsOperator(c) {
		s.send(c, NoPrivileges(s.Config.ServerName, c.Nickname, name))
		return
	}

	topic := params[1]
	if len(topic) > maxTopicLength {
		topic = topic[:maxTopicLength]
	}

	ch.Topic = topic
	ch.TopicAuthor = c.Nickname
	ch.TopicTime = time.Now().Format("15:04:05")

	ch.BroadcastFunc(c, func(to *Client) Message {
		return Topic(s.Config.ServerName, to.Nickname, name, ch.Topic)
	}, s.send)
	ch.BroadcastFunc(c, func(to *Client) Message {
		return TopicWhoTime(s.Config.ServerName, to.Nickname, name, ch.TopicAuthor, ch.TopicTime)
	}, s.send)
}

// --- INVITE ---

func (s *Server) handleInvite(c *Client, params []string) {
	if len(params) != 2 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}
	nick, name := params[0], params[1]

	ch, exists := s.registry.Channel(name)
	if !exists || !channelNameValid(name) {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOccupant(c) {
		s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	target, exists := s.registry.ClientByNick(nick)
	if !exists {
		s.send(c, NoSuchNick(s.Config.ServerName, c.Nickname, nick))
		return
	}
	if ch.IsOccupant(target) {
		s.send(c, UserOnChannel(s.Config.ServerName, c.Nickname, nick, name))
		return
	}
	if ch.Modes.InviteOnly && !ch.IsOperator(c) {
		s.send(c, NoPrivileges(s.Config.ServerName, c.Nickname, name))
		return
	}
	if ch.Modes.LimitSet && ch.Occupants() >= ch.Limit {
		s.send(c, ChannelIsFull(s.Config.ServerName, c.Nickname, name))
		return
	}

	target.Invite(name)
	s.send(c, Inviting(s.Config.ServerName, c.Nickname, name, nick))
	s.send(target, Envelope(c.Nickname, c.Username, c.ip, "INVITE", nick, name))
}

// --- KICK ---

func (s *Server) handleKick(c *Client, params []string) {
	if len(params) < 2 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}

	nick := params[1]
	reason := ""
	hasReason := len(params) > 2
	if hasReason {
		reason = params[2]
	}

	for _, name := range strings.Split(params[0], ",") {
		s.kickOne(c, name, nick, reason, hasReason)
	}
}

func (s *Server) kickOne(c *Client, name, nick, reason string, hasReason bool) {
	ch, exists := s.registry.Channel(name)
	if !exists {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOccupant(c) {
		s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOperator(c) {
		s.send(c, NoPrivileges(s.Config.ServerName, c.Nickname, name))
		return
	}

	target, exists := s.registry.ClientByNick(nick)
	if !exists || !ch.IsOccupant(target) {
		s.send(c, UserNotInChannel(s.Config.ServerName, c.Nickname, nick, name))
		return
	}

	kickParams := []string{name, nick}
	if hasReason {
		kickParams = append(kickParams, reason)
	}
	ch.BroadcastExcept(c, Envelope(c.Nickname, c.Username, c.ip, "KICK", kickParams...), s.send)

	ch.RemoveOccupant(target)
	if ch.Empty() {
		s.registry.RemoveChannel(name)
	}
}

// --- MODE ---

type modeChange struct {
	sign   byte
	letter byte
	param  string
}

func (s *Server) handleMode(c *Client, params []string) {
	if len(params) < 1 {
		s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
		return
	}
	name := params[0]

	ch, exists := s.registry.Channel(name)
	if !exists {
		s.send(c, NoSuchChannel(s.Config.ServerName, c.Nickname, name))
		return
	}
	if !ch.IsOccupant(c) {
		s.send(c, NotOnChannel(s.Config.ServerName, c.Nickname, name))
		return
	}

	if len(params) < 2 {
		s.send(c, ChannelModeIs(s.Config.ServerName, c.Nickname, name, ch.Modes.String()))
		s.send(c, CreationTime(s.Config.ServerName, c.Nickname, name, ch.CreatedAt))
		return
	}

	if !ch.IsOperator(c) {
		s.send(c, NoPrivileges(s.Config.ServerName, c.Nickname, name))
		return
	}

	applied := s.applyModeChanges(c, ch, params[1], params[2:])
	if len(applied) == 0 {
		return
	}

	modeStr, modeParams := renderModeChanges(applied)
	envParams := append([]string{name, modeStr}, modeParams...)
	ch.Broadcast(Envelope(c.Nickname, c.Username, c.ip, "MODE", envParams...), s.send)
}

// applyModeChanges parses and applies a MODE change string in place,
// per section 4.H. It returns the changes that actually took effect, in
// application order, for the consolidated broadcast. It aborts (and
// stops consuming further letters) if a parameter is required but none
// remain, after sending 461.
func (s *Server) applyModeChanges(c *Client, ch *Channel, modeStr string, args []string) []modeChange {
	var applied []modeChange
	sign := byte('+')
	argIdx := 0

	nextArg := func() (string, bool) {
		if argIdx >= len(args) {
			return "", false
		}
		v := args[argIdx]
		argIdx++
		return v, true
	}

	for i := 0; i < len(modeStr); i++ {
		letter := modeStr[i]

		if letter == '+' || letter == '-' {
			sign = letter
			continue
		}

		switch letter {
		case 'i':
			ch.Modes.InviteOnly = sign == '+'
			applied = append(applied, modeChange{sign, 'i', ""})

		case 't':
			ch.Modes.TopicLocked = sign == '+'
			applied = append(applied, modeChange{sign, 't', ""})

		case 'k':
			key, ok := nextArg()
			if !ok {
				s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
				return applied
			}
			if sign == '+' {
				if ch.Modes.KeyRequired {
					s.send(c, KeyAlreadySet(s.Config.ServerName, c.Nickname, ch.Name))
					continue
				}
				ch.Modes.KeyRequired = true
				ch.Key = key
				applied = append(applied, modeChange{sign, 'k', key})
			} else if ch.Key == key {
				ch.Modes.KeyRequired = false
				ch.Key = ""
				applied = append(applied, modeChange{sign, 'k', key})
			}

		case 'o':
			nick, ok := nextArg()
			if !ok {
				s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
				return applied
			}
			target, exists := s.registry.ClientByNick(nick)
			if !exists {
				continue
			}
			if sign == '+' {
				if ch.Promote(target) {
					applied = append(applied, modeChange{sign, 'o', nick})
				}
			} else if ch.Demote(target) {
				applied = append(applied, modeChange{sign, 'o', nick})
			}

		case 'l':
			if sign == '+' {
				raw, ok := nextArg()
				if !ok {
					s.send(c, NeedMoreParams(s.Config.ServerName, c.Nickname))
					return applied
				}
				n, err := strconv.Atoi(raw)
				if err != nil || n <= 0 {
					// Section 9's open question: we reject a non-positive
					// limit rather than silently treating it as -l.
					continue
				}
				ch.Modes.LimitSet = true
				ch.Limit = n
				applied = append(applied, modeChange{sign, 'l', raw})
			} else {
				ch.Modes.LimitSet = false
				ch.Limit = 0
				applied = append(applied, modeChange{sign, 'l', ""})
			}

		default:
			s.send(c, UnknownMode(s.Config.ServerName, c.Nickname, string(letter)))
		}
	}

	return applied
}

// renderModeChanges turns a list of applied mode changes into the
// consolidated "+xy-z" string and its ordered parameter list for the
// MODE envelope broadcast.
func renderModeChanges(changes []modeChange) (string, []string) {
	var modeStr strings.Builder
	var params []string
	var curSign byte

	for _, ch := range changes {
		if ch.sign != curSign {
			modeStr.WriteByte(ch.sign)
			curSign = ch.sign
		}
		modeStr.WriteByte(ch.letter)
		if ch.param != "" {
			params = append(params, ch.param)
		}
	}

	return modeStr.String(), params
}

// --- QUIT ---

func (s *Server) handleQuit(c *Client, params []string) {
	reason := "Leaving"
	if len(params) > 0 {
		reason = params[0]
	}
	s.teardown(c, reason)
}
