package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/openstays/stay-booking/internal/models"
)

// CookieName is the httpOnly cookie carrying the opaque session token.
const CookieName = "stay_session"

const keyPrefix = "session:"

// Data is the identity snapshot resolved on every request.
type Data struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
}

// Store keeps sessions in Redis keyed by an opaque token. Expiry is
// delegated to Redis TTLs, so there is no sweeper to run.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create issues a fresh token for the identity and persists it.
func (s *Store) Create(ctx context.Context, d Data) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Get resolves a token. A missing or expired session returns (nil, nil),
// not an error: being unauthenticated is a normal state.
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// Destroy invalidates a token. Deleting an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TTLSeconds is the cookie max-age matching the Redis expiry.
func (s *Store) TTLSeconds() int {
	return int(s.ttl / time.Second)
}
