package backend

import (
	"context"
	"errors"
)

type sessionContextKey struct{}

// WithSession tags ctx with the visitor session that token operations are
// scoped to. The HTTP layer applies it once per request.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

func sessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return id
	}
	return ""
}

// KeyValue is the minimal persistence surface the token store needs; the
// cart package's stores satisfy it.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KVTokenStore keeps each visitor's bearer token next to the rest of their
// session state, keyed per session. Reset wipes only that session's token;
// other visitors' state is never touched.
type KVTokenStore struct {
	kv KeyValue
}

func NewKVTokenStore(kv KeyValue) *KVTokenStore {
	return &KVTokenStore{kv: kv}
}

func tokenKey(sessionID string) string {
	return "token:" + sessionID
}

// Token returns the session's stored bearer token. A request without a
// session, or a missing or unreadable token, proceeds anonymously, so those
// cases collapse to an empty token.
func (s *KVTokenStore) Token(ctx context.Context) (string, error) {
	sessionID := sessionFromContext(ctx)
	if sessionID == "" {
		return "", nil
	}
	data, err := s.kv.Get(ctx, tokenKey(sessionID))
	if err != nil {
		return "", nil
	}
	return string(data), nil
}

func (s *KVTokenStore) Save(ctx context.Context, token string) error {
	sessionID := sessionFromContext(ctx)
	if sessionID == "" {
		return errors.New("no session in context")
	}
	return s.kv.Set(ctx, tokenKey(sessionID), []byte(token))
}

func (s *KVTokenStore) Reset(ctx context.Context) error {
	sessionID := sessionFromContext(ctx)
	if sessionID == "" {
		return nil
	}
	return s.kv.Delete(ctx, tokenKey(sessionID))
}
