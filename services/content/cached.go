package content

import (
	"context"
	"encoding/json"
	"time"

	"cibnlibrary/models"
	"cibnlibrary/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedStore is a read-through Redis cache in front of another Store.
// Cache errors never fail a read; they only cost a trip to the backing store.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStore wraps next with a page cache living for ttl.
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	return &CachedStore{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(key models.PageKey) string {
	return utils.CMSCachePrefix + string(key)
}

func (s *CachedStore) Page(ctx context.Context, key models.PageKey) (*models.PageContent, error) {
	data, err := s.client.Get(ctx, cacheKey(key)).Bytes()
	switch {
	case err == nil:
		var page models.PageContent
		if jerr := json.Unmarshal(data, &page); jerr == nil {
			return &page, nil
		}
		s.logger.Warn("Dropping unreadable cached page", zap.String("page", string(key)))
		_ = s.client.Del(ctx, cacheKey(key)).Err()
	case err != redis.Nil:
		s.logger.Warn("Page cache read failed", zap.String("page", string(key)), zap.Error(err))
	}

	page, err := s.next.Page(ctx, key)
	if err != nil {
		return nil, err
	}
	if data, jerr := json.Marshal(page); jerr == nil {
		if serr := s.client.Set(ctx, cacheKey(key), data, s.ttl).Err(); serr != nil {
			s.logger.Warn("Page cache write failed", zap.String("page", string(key)), zap.Error(serr))
		}
	}
	return page, nil
}

func (s *CachedStore) Pages(ctx context.Context) (models.CMSPages, error) {
	return s.next.Pages(ctx)
}

func (s *CachedStore) SavePage(ctx context.Context, key models.PageKey, page models.PageContent) error {
	if err := s.next.SavePage(ctx, key, page); err != nil {
		return err
	}
	if err := s.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		s.logger.Warn("Page cache invalidation failed", zap.String("page", string(key)), zap.Error(err))
	}
	return nil
}
