package answercache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/fourp/smartchat/internal/domain/chat"
)

// ValkeyCache persists generated answers in a Valkey-compatible database so
// repeated questions skip the provider round trips.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "chat"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get implements chat.AnswerCache.
func (c *ValkeyCache) Get(ctx context.Context, key string) (chat.CachedAnswer, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return chat.CachedAnswer{}, false, nil
		}
		return chat.CachedAnswer{}, false, err
	}
	var answer chat.CachedAnswer
	if err := json.Unmarshal([]byte(payload), &answer); err != nil {
		return chat.CachedAnswer{}, false, err
	}
	return answer, true, nil
}

// Set implements chat.AnswerCache.
func (c *ValkeyCache) Set(ctx context.Context, key string, answer chat.CachedAnswer, ttl time.Duration) error {
	payload, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return c.prefix + ":answer:" + key
}

var _ chat.AnswerCache = (*ValkeyCache)(nil)
