package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// RedisStore keeps sessions in Redis for deployments without a durable
// disk. Sessions are stored without TTL: onboarding state persists
// indefinitely, same as the file snapshot.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(host, port string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("user:%d:session", userID)
}

// Create unconditionally overwrites any existing session for the user.
func (s *RedisStore) Create(userID int64, session domain.UserSession) error {
	return s.set(userID, session)
}

// Get returns the current session, or false for unknown users.
func (s *RedisStore) Get(userID int64) (domain.UserSession, bool) {
	result := s.client.Get(context.Background(), sessionKey(userID))
	if result.Err() == redis.Nil {
		return domain.UserSession{}, false
	}
	if result.Err() != nil {
		logger.Warningf("Failed to read session for user %d: %v", userID, result.Err())
		return domain.UserSession{}, false
	}

	var session domain.UserSession
	if err := json.Unmarshal([]byte(result.Val()), &session); err != nil {
		logger.Warningf("Corrupt session payload for user %d: %v", userID, err)
		return domain.UserSession{}, false
	}

	return session, true
}

// Update replaces the session for the user wholesale.
func (s *RedisStore) Update(userID int64, session domain.UserSession) error {
	return s.set(userID, session)
}

func (s *RedisStore) set(userID int64, session domain.UserSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(context.Background(), sessionKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
