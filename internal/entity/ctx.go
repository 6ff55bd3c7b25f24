package entity

import (
	"context"
)

type (
	CtxKeySession struct{}
	CtxKeyIP      struct{}
)

func SetSessionToContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, CtxKeySession{}, s)
}

func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(CtxKeySession{}).(Session)
	if !ok {
		return Session{}, ErrUnauthorized
	}

	return s, nil
}

func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(CtxKeyIP{}).(string)
	return ip
}
