// Package notify holds the single global notification shown after every
// mutating action, and the presenter that turns backend failures into one.
package notify

import (
	"encoding/json"

	"github.com/gorilla/sessions"
)

type Type string

const (
	Success Type = "success"
	Danger  Type = "danger"
)

type Message struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

func Successf(message string) Message {
	return Message{Type: Success, Message: message}
}

const sessionKey = "notify.message"

// Set replaces the pending message of the session. Only the last one survives.
func Set(sess *sessions.Session, msg Message) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	sess.Values[sessionKey] = string(raw)
}

// Pop returns and clears the pending message.
func Pop(sess *sessions.Session) (Message, bool) {
	raw, ok := sess.Values[sessionKey].(string)
	if !ok || raw == "" {
		return Message{}, false
	}
	delete(sess.Values, sessionKey)
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}
