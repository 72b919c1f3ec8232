package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// TokenStore tracks issued refresh tokens in Redis so they can be inspected
// and revoked. The stub embeds its own miniredis; nothing outlives the
// process.
type TokenStore struct {
	rdb   *redis.Client
	mini  *miniredis.Miniredis
	close func()
}

type refreshRecord struct {
	UserID    int64  `json:"user_id"`
	StudentID string `json:"student_id"`
}

// NewEmbeddedTokenStore starts an in-process miniredis and connects a client
// to it.
func NewEmbeddedTokenStore() (*TokenStore, error) {
	mini, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("start embedded redis: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	return &TokenStore{
		rdb:  rdb,
		mini: mini,
		close: func() {
			_ = rdb.Close()
			mini.Close()
		},
	}, nil
}

func (s *TokenStore) Close() { s.close() }

// StoreRefreshToken records an issued refresh token id with a TTL matching
// the token's lifetime.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID int64, studentID string, ttl time.Duration) error {
	payload, err := json.Marshal(refreshRecord{UserID: userID, StudentID: studentID})
	if err != nil {
		return fmt.Errorf("marshal refresh record: %w", err)
	}
	return s.rdb.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl).Err()
}

// GetRefreshToken looks up an issued refresh token by id.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID int64, studentID string, err error) {
	data, err := s.rdb.Get(ctx, refreshTokenKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, "", fmt.Errorf("refresh token not found")
		}
		return 0, "", fmt.Errorf("lookup refresh token: %w", err)
	}
	var rec refreshRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return 0, "", fmt.Errorf("unmarshal refresh record: %w", err)
	}
	return rec.UserID, rec.StudentID, nil
}

// DeleteRefreshToken revokes an issued refresh token.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.rdb.Del(ctx, refreshTokenKeyPrefix+tokenID).Err()
}
