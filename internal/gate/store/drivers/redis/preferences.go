// Package redis serves user preferences from Redis, one hash per user.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "talentgate:prefs:"

// Preferences implements store.Preferences on a Redis hash per user.
type Preferences struct {
	client redis.UniversalClient
	prefix string
}

var _ store.Preferences = (*Preferences)(nil)

func NewPreferences(client redis.UniversalClient) *Preferences {
	return &Preferences{client: client, prefix: defaultPrefix}
}

// NewPreferencesWithPrefix namespaces keys, e.g. per test run.
func NewPreferencesWithPrefix(client redis.UniversalClient, prefix string) *Preferences {
	return &Preferences{client: client, prefix: prefix}
}

type entry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Preferences) GetPreference(ctx context.Context, userID, key string) (domain.Preference, error) {
	if userID == "" || key == "" {
		return domain.Preference{}, store.ErrNotFound
	}

	raw, err := p.client.HGet(ctx, p.prefix+userID, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Preference{}, store.ErrNotFound
		}
		return domain.Preference{}, fmt.Errorf("redis hget: %w", err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return domain.Preference{}, fmt.Errorf("unmarshal preference: %w", err)
	}
	return domain.Preference{UserID: userID, Key: key, Value: e.Value, UpdatedAt: e.UpdatedAt}, nil
}

func (p *Preferences) SetPreference(ctx context.Context, pref domain.Preference) error {
	if pref.UserID == "" || pref.Key == "" {
		return errors.New("preference user and key cannot be empty")
	}
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry{Value: pref.Value, UpdatedAt: pref.UpdatedAt})
	if err != nil {
		return fmt.Errorf("marshal preference: %w", err)
	}
	return p.client.HSet(ctx, p.prefix+pref.UserID, pref.Key, data).Err()
}

// Ping reports whether the backing Redis is reachable.
func (p *Preferences) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
