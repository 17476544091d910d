package ircd

import "fmt"

// Numeric reply codes used by this server. Names follow the RFC 1459/2812
// mnemonics referenced in section 4.A.
const (
	ReplyWelcome       = "001"
	ReplyChannelModeIs = "324"
	ReplyCreationTime  = "329"
	ReplyNoTopic       = "331"
	ReplyTopic         = "332"
	ReplyTopicWhoTime  = "333"
	ReplyInviting      = "341"
	ReplyNamReply      = "353"
	ReplyEndOfNames    = "366"
	ErrNoSuchNick      = "401"
	ErrNoSuchChannel   = "403"
	ErrTooManyChannels = "405"
	ErrTooManyTargets  = "407"
	ErrNoRecipient     = "411"
	ErrNoTextToSend    = "412"
	ErrUnknownCommand  = "421"
	ErrNoNicknameGiven = "431"
	ErrErroneusNick    = "432"
	ErrNicknameInUse   = "433"
	ErrUserNotInChan   = "441"
	ErrNotOnChannel    = "442"
	ErrUserOnChannel   = "443"
	ErrNotRegistered   = "451"
	ErrNeedMoreParams  = "461"
	ErrAlreadyRegistrd = "462"
	ErrPasswdMismatch  = "464"
	ErrKeySet          = "467"
	ErrChannelIsFull   = "471"
	ErrUnknownMode     = "472"
	ErrInviteOnlyChan  = "473"
	ErrBadChannelKey   = "475"
	ErrNoPrivileges    = "482"
)

// subject returns nick if non-empty, else the "*" placeholder an
// unregistered client is shown in reply envelopes per section 3.
func subject(nick string) string {
	if nick == "" {
		return "*"
	}
	return nick
}

func numeric(server, code, ident string, rest ...string) Message {
	params := make([]string, 0, len(rest)+1)
	params = append(params, ident)
	params = append(params, rest...)
	return Message{Prefix: server, Command: code, Params: params}
}

// Welcome is the 001 reply sent exactly once, when registration completes.
func Welcome(server, nick string) Message {
	return numeric(server, ReplyWelcome, nick, "Connected to IRC network successfully!")
}

// ChannelModeIs is the 324 reply to a mode-view MODE.
func ChannelModeIs(server, nick, channel, modes string) Message {
	return numeric(server, ReplyChannelModeIs, subject(nick), channel, modes)
}

// CreationTime is the 329 reply giving a channel's creation timestamp.
func CreationTime(server, nick, channel string, ts int64) Message {
	return numeric(server, ReplyCreationTime, subject(nick), channel, fmt.Sprintf("%d", ts))
}

// NoTopic is the 331 reply for an unset topic.
func NoTopic(server, nick, channel string) Message {
	return numeric(server, ReplyNoTopic, subject(nick), channel, "No topic is set")
}

// Topic is the 332 reply carrying the current topic.
func Topic(server, nick, channel, topic string) Message {
	return numeric(server, ReplyTopic, subject(nick), channel, topic)
}

// TopicWhoTime is the 333 reply identifying who set the topic and when.
func TopicWhoTime(server, nick, channel, topicAuthor, hhmmss string) Message {
	return numeric(server, ReplyTopicWhoTime, subject(nick), channel, topicAuthor, hhmmss)
}

// Inviting is the 341 acknowledgement sent back to an inviter.
func Inviting(server, nick, channel, invitedNick string) Message {
	return numeric(server, ReplyInviting, subject(nick), channel, invitedNick)
}

// NamesReply is a 353 line listing some subset of a channel's occupants.
func NamesReply(server, nick, channel, memberList string) Message {
	return numeric(server, ReplyNamReply, subject(nick), "=", channel, memberList)
}

// EndOfNames is the 366 reply terminating a NAMES listing.
func EndOfNames(server, nick, channel string) Message {
	return numeric(server, ReplyEndOfNames, subject(nick), channel, "End of /NAMES list.")
}

// NoSuchNick is the 401 reply for an unknown nickname target.
func NoSuchNick(server, nick, target string) Message {
	return numeric(server, ErrNoSuchNick, subject(nick), target, "No such nick/channel")
}

// NoSuchChannel is the 403 reply for an unknown or malformed channel name.
func NoSuchChannel(server, nick, channel string) Message {
	return numeric(server, ErrNoSuchChannel, subject(nick), channel, "No such channel")
}

// TooManyChannels is the 405 reply when a client tries to join beyond its
// channel limit.
func TooManyChannels(server, nick, channel string) Message {
	return numeric(server, ErrTooManyChannels, subject(nick), channel, "You have joined too many channels")
}

// TooManyTargets is the 407 reply for an oversized JOIN/PRIVMSG target list.
func TooManyTargets(server, nick string) Message {
	return numeric(server, ErrTooManyTargets, subject(nick), "Too many channels")
}

// NoRecipient is the 411 reply for PRIVMSG with no target list.
func NoRecipient(server, nick string) Message {
	return numeric(server, ErrNoRecipient, subject(nick), "No recipient given (PRIVMSG)")
}

// NoTextToSend is the 412 reply for PRIVMSG with an empty message body.
func NoTextToSend(server, nick string) Message {
	return numeric(server, ErrNoTextToSend, subject(nick), "No text to send")
}

// UnknownCommand is the 421 reply for a verb the dispatcher doesn't know.
func UnknownCommand(server, nick, verb string) Message {
	return numeric(server, ErrUnknownCommand, subject(nick), verb, "Unknown command")
}

// NoNicknameGiven is the 431 reply for NICK with no argument.
func NoNicknameGiven(server, nick string) Message {
	return numeric(server, ErrNoNicknameGiven, subject(nick), "No nickname given")
}

// ErroneousNickname is the 432 reply for a NICK that fails validation.
func ErroneousNickname(server, attempted string) Message {
	return numeric(server, ErrErroneusNick, attempted, "Invalid nickname format")
}

// NicknameInUse is the 433 reply for a NICK collision.
func NicknameInUse(server, attempted string) Message {
	return numeric(server, ErrNicknameInUse, attempted, "Nickname already taken")
}

// UserNotInChannel is the 441 reply: the KICK target isn't on the channel.
func UserNotInChannel(server, nick, target, channel string) Message {
	return numeric(server, ErrUserNotInChan, subject(nick), target, channel, "User not on this channel")
}

// NotOnChannel is the 442 reply: the caller isn't a member of the channel.
func NotOnChannel(server, nick, channel string) Message {
	return numeric(server, ErrNotOnChannel, subject(nick), channel, "You are not on this channel")
}

// UserOnChannel is the 443 reply: the target is already a member.
func UserOnChannel(server, nick, target, channel string) Message {
	return numeric(server, ErrUserOnChannel, subject(nick), target, channel, "is already on this channel")
}

// NotRegistered is the 451 reply for a command requiring registration.
func NotRegistered(server, nick string) Message {
	return numeric(server, ErrNotRegistered, subject(nick), "Registration required!")
}

// NeedMoreParams is the 461 reply for a command missing arguments.
func NeedMoreParams(server, nick string) Message {
	return numeric(server, ErrNeedMoreParams, subject(nick), "Insufficient parameters provided.")
}

// AlreadyRegistered is the 462 reply for PASS/USER sent after registration.
func AlreadyRegistered(server, nick string) Message {
	return numeric(server, ErrAlreadyRegistrd, subject(nick), "You cannot register again!")
}

// PasswordMismatch is the 464 reply for a wrong PASS.
func PasswordMismatch(server, nick string) Message {
	return numeric(server, ErrPasswdMismatch, subject(nick), "Incorrect password!")
}

// KeyAlreadySet is the 467 reply for +k on a channel that already has a key.
func KeyAlreadySet(server, nick, channel string) Message {
	return numeric(server, ErrKeySet, subject(nick), channel, "Channel key is already configured.")
}

// ChannelIsFull is the 471 reply for JOIN against a full, limited channel.
func ChannelIsFull(server, nick, channel string) Message {
	return numeric(server, ErrChannelIsFull, subject(nick), channel, "Cannot join channel (+l)")
}

// UnknownMode is the 472 reply for an unrecognised MODE letter.
func UnknownMode(server, nick, modeChar string) Message {
	return numeric(server, ErrUnknownMode, subject(nick), modeChar, "is an unknown channel mode")
}

// InviteOnlyChan is the 473 reply for JOIN against an invite-only channel.
func InviteOnlyChan(server, nick, channel string) Message {
	return numeric(server, ErrInviteOnlyChan, subject(nick), channel, "Cannot join channel (+i)")
}

// BadChannelKey is the 475 reply for JOIN with a wrong or missing key.
func BadChannelKey(server, nick, channel string) Message {
	return numeric(server, ErrBadChannelKey, subject(nick), channel, "Incorrect password for channel")
}

// NoPrivileges is the 482 reply for a privileged action by a non-operator.
func NoPrivileges(server, nick, channel string) Message {
	return numeric(server, ErrNoPrivileges, subject(nick), channel, "You are not a channel operator")
}

// Envelope builds a user-originated verb echo: ":nick!~user@host <verb>
// <params...>", per the section 4.A envelope convention.
func Envelope(nick, user, host, verb string, params ...string) Message {
	return Message{
		Prefix:  nickUhost(nick, user, host),
		Command: verb,
		Params:  params,
	}
}
