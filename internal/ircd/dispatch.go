package ircd

// channelOpVerbs require a logged-in client.
var channelOpVerbs = map[string]bool{
	"JOIN":    true,
	"PART":    true,
	"PRIVMSG": true,
	"TOPIC":   true,
	"INVITE":  true,
	"KICK":    true,
	"MODE":    true,
}

// dispatch implements the two-table command dispatcher from section
// 4.G: normalize/tokenize happens before this is called (Tokenize
// already uppercased the verb); here we only decide which table, if
// any, a verb belongs to given the caller's registration state.
func (s *Server) dispatch(c *Client, cmd Command) {
	if cmd.Verb == "" {
		return
	}

	handler, isRegistrationVerb := s.registrationHandlers[cmd.Verb]
	if isRegistrationVerb {
		handler(c, cmd.Params)
		return
	}

	if c.LoggedIn() && channelOpVerbs[cmd.Verb] {
		s.channelOpHandlers[cmd.Verb](c, cmd.Params)
		return
	}

	if !c.LoggedIn() {
		s.send(c, NotRegistered(s.Config.ServerName, c.Nickname))
		return
	}

	s.send(c, UnknownCommand(s.Config.ServerName, c.Nickname, cmd.Verb))
}
