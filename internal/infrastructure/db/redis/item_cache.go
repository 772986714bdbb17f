package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

const (
	itemKeyPrefix  = "item:"
	defaultItemTTL = time.Hour
)

// ItemCache is a read-through cache in front of the catalog. Entries
// are stored as JSON under item:<id> with a TTL; admin writes
// invalidate explicitly. Cache failures degrade to the source lookup
// rather than failing the request.
type ItemCache struct {
	client *redis.Client
	source ports.CatalogItemLookup
	ttl    time.Duration
	log    zerolog.Logger
}

func NewItemCache(client *redis.Client, source ports.CatalogItemLookup, log zerolog.Logger) *ItemCache {
	return &ItemCache{
		client: client,
		source: source,
		ttl:    defaultItemTTL,
		log:    log,
	}
}

func (c *ItemCache) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	raw, err := c.client.Get(ctx, itemKeyPrefix+id).Bytes()
	if err == nil {
		var item domain.Item
		if err := json.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
		// corrupt entry, fall through to the source
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("item_id", id).Msg("item cache read failed")
	}

	item, err := c.source.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, item)
	return item, nil
}

func (c *ItemCache) FindByIDs(ctx context.Context, ids []string) ([]*domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKeyPrefix + id
	}

	out := make([]*domain.Item, 0, len(ids))
	var misses []string

	raws, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn().Err(err).Msg("item cache batch read failed")
		misses = ids
	} else {
		for i, raw := range raws {
			s, ok := raw.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			var item domain.Item
			if err := json.Unmarshal([]byte(s), &item); err != nil {
				misses = append(misses, ids[i])
				continue
			}
			out = append(out, &item)
		}
	}

	if len(misses) > 0 {
		fetched, err := c.source.FindByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, item := range fetched {
			c.store(ctx, item)
			out = append(out, item)
		}
	}
	return out, nil
}

// Invalidate drops the cached entries for the given ids.
func (c *ItemCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKeyPrefix + id
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *ItemCache) store(ctx context.Context, item *domain.Item) {
	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, itemKeyPrefix+item.ID, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("item_id", item.ID).Msg("item cache write failed")
	}
}

var _ ports.CatalogItemLookup = (*ItemCache)(nil)
var _ ports.ItemInvalidator = (*ItemCache)(nil)
