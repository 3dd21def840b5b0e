package dedup

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/tracing"
)

const (
	DefaultTTL = 24 * time.Hour

	keyPrefix = "mailtickets:inbound:"
)

// Filter remembers inbound message ids in Redis so provider retries of the
// same webhook do not create duplicate tickets.
type Filter struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.Logger
}

func NewFilter(rdb *redis.Client, ttl time.Duration, log logger.Logger) *Filter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Filter{rdb: rdb, ttl: ttl, log: log}
}

// NewFromConfig returns a Redis backed filter, or one that accepts every
// message when no Redis URL is configured.
func NewFromConfig(cfg *config.RedisConfig, log logger.Logger) (interfaces.MessageDeduplicator, error) {
	if cfg == nil || cfg.URL == "" {
		return Disabled{}, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}
	return NewFilter(redis.NewClient(opts), time.Duration(cfg.DedupTTL)*time.Hour, log), nil
}

// FirstSeen marks messageID as seen. Redis failures let the message through.
func (f *Filter) FirstSeen(ctx context.Context, messageID string) bool {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DedupFilter.FirstSeen")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message-id", messageID)

	if messageID == "" {
		return true
	}

	set, err := f.rdb.SetNX(ctx, keyPrefix+messageID, 1, f.ttl).Result()
	if err != nil {
		tracing.TraceErr(span, err)
		f.log.Warnf("dedup check failed for %s, accepting message: %v", messageID, err)
		return true
	}
	return set
}

// Forget deletes the mark left by FirstSeen. Used when processing failed and
// the provider's retry must not be treated as a duplicate.
func (f *Filter) Forget(ctx context.Context, messageID string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DedupFilter.Forget")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message-id", messageID)

	if messageID == "" {
		return
	}

	if err := f.rdb.Del(ctx, keyPrefix+messageID).Err(); err != nil {
		tracing.TraceErr(span, err)
		f.log.Errorf("failed to release dedup key for %s, retries will be skipped until it expires: %v", messageID, err)
	}
}

func (f *Filter) Close() error {
	return f.rdb.Close()
}

// Disabled accepts every message.
type Disabled struct{}

func (Disabled) FirstSeen(ctx context.Context, messageID string) bool {
	return true
}

func (Disabled) Forget(ctx context.Context, messageID string) {}
