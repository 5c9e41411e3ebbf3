package composables

import (
	"context"
	"errors"

	"github.com/gorilla/sessions"

	"github.com/ce1sus/ce1sus-console/pkg/constants"
)

var ErrNoSession = errors.New("session not found in context")

func WithSession(ctx context.Context, sess *sessions.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

// UseSession returns the browser session loaded by middleware.WithSession.
func UseSession(ctx context.Context) (*sessions.Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(*sessions.Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}
