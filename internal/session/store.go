package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Saifr72000/airsense-platform/internal/store"
)

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// DefaultTTL 会话有效期
const DefaultTTL = 24 * time.Hour

// Session 一次登录会话
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store Redis 会话存储
// Sessions are opaque uuid tokens mapping to a JSON record with a TTL;
// expiry is enforced by Redis, there is no sweeper.
type Store struct {
	kv  store.KV
	ttl time.Duration
}

// NewStore 创建会话存储
func NewStore(kv store.KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{kv: kv, ttl: ttl}
}

// Create 为用户创建新会话
func (s *Store) Create(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey(sess.ID), string(raw), s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Get 按 token 获取会话；不存在或过期返回 ErrNotFound
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}
	raw, err := s.kv.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete 删除会话（登出）
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.kv.Del(ctx, sessionKey(sessionID))
}

func sessionKey(id string) string {
	return "airsense:session:" + id
}
