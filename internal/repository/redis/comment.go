package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/internal/repository/cache"
)

const (
	KeyPostComments = "comment:post:%d"
)

type commentCache struct {
	client *redis.Client
}

var _ domain.CommentCache = (*commentCache)(nil)

func NewCommentCache(client *redis.Client) *commentCache {
	return &commentCache{client}
}

func (c *commentCache) GetPostComments(ctx context.Context, postID int64) ([]domain.Comment, bool, error) {
	key := fmt.Sprintf(KeyPostComments, postID)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, domain.ErrCacheMiss
	} else if err != nil {
		return nil, false, err
	}

	var entry cache.DataWithLogicalExpire[[]domain.Comment]
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, err
	}
	return entry.Data, entry.IsLogicalExpired(), nil
}

func (c *commentCache) SetPostComments(ctx context.Context, postID int64, comments []domain.Comment, ttl time.Duration) error {
	key := fmt.Sprintf(KeyPostComments, postID)
	// tree fields are derived on read and never cached
	flat := make([]domain.Comment, len(comments))
	for i := range comments {
		flat[i] = comments[i]
		flat[i].User = nil
		flat[i].Replies = nil
	}
	data, err := json.Marshal(cache.NewDataWithLogicalExpire(flat, ttl))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, cache.HardTTL(ttl)).Err()
}

func (c *commentCache) DeletePostComments(ctx context.Context, postID int64) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyPostComments, postID)).Err()
}
