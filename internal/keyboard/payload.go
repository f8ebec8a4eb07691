package keyboard

import (
	"strings"
	"unicode/utf8"
)

// Action is what a button press asks for
type Action int

const (
	ActionNone Action = iota
	ActionJoin
	ActionGuess
)

const (
	NoopPayload = "noop"

	joinPrefix  = "j"
	guessPrefix = "g"
	sep         = ":"
)

// Payload is a decoded button payload
type Payload struct {
	Action    Action
	SessionID string
	Letter    string
}

// JoinPayload encodes the accept-game button for a session
func JoinPayload(sessionID string) string {
	return joinPrefix + sep + sessionID
}

// GuessPayload encodes a letter button for a session
func GuessPayload(sessionID, letter string) string {
	return guessPrefix + sep + sessionID + sep + letter
}

// ParsePayload decodes data produced by JoinPayload or GuessPayload. Anything
// else, including filler and separator buttons, decodes to ActionNone.
func ParsePayload(data string) Payload {
	parts := strings.Split(data, sep)
	switch {
	case len(parts) == 2 && parts[0] == joinPrefix && parts[1] != "":
		return Payload{Action: ActionJoin, SessionID: parts[1]}
	case len(parts) == 3 && parts[0] == guessPrefix && parts[1] != "" && utf8.RuneCountInString(parts[2]) == 1:
		return Payload{Action: ActionGuess, SessionID: parts[1], Letter: parts[2]}
	default:
		return Payload{Action: ActionNone}
	}
}
