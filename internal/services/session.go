package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionKeyPrefix is the Redis key prefix for sessions. Sessions are
// written and expired by the external identity provider; this service only
// ever reads them.
const SessionKeyPrefix = "session:"

// SessionService resolves opaque bearer credentials to user IDs.
type SessionService struct {
	client *redis.Client
}

func NewSessionService(client *redis.Client) *SessionService {
	return &SessionService{client: client}
}

// ResolveUser returns the user ID a session token belongs to. ok is false
// for empty, unknown, or expired tokens. A store failure is reported as an
// error so callers do not mistake an outage for a bad credential.
func (s *SessionService) ResolveUser(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	userID, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("session lookup: %w", err)
	}
	if userID == "" {
		return "", false, nil
	}
	return userID, true, nil
}
