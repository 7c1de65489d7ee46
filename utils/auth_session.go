package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSession is a signed-in user as kept in Redis.
type AuthSession struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sessions are keyed by the token hash, never the raw token.
func authSessionKey(token string) string {
	return AuthSessionPrefix + HashToken(token)
}

// SaveAuthSession saves the authentication session in Redis with a TTL.
func SaveAuthSession(ctx context.Context, client *redis.Client, token string, session AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := client.Set(ctx, authSessionKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the authentication session from Redis; a missing
// session returns redis.Nil.
func GetAuthSession(ctx context.Context, client *redis.Client, token string) (*AuthSession, error) {
	data, err := client.Get(ctx, authSessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes an authentication session from Redis.
func DeleteAuthSession(ctx context.Context, client *redis.Client, token string) error {
	return client.Del(ctx, authSessionKey(token)).Err()
}
