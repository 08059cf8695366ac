package earnings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryTTL = 5 * time.Minute

// SummaryCache keeps recently computed summaries in redis for the
// dashboard's summary-only endpoint. A nil client disables caching; the
// full-report path never reads the cache.
type SummaryCache struct {
	rdb *redis.Client
	svc *Service
}

func NewSummaryCache(rdb *redis.Client, svc *Service) *SummaryCache {
	return &SummaryCache{rdb: rdb, svc: svc}
}

func (c *SummaryCache) Summary(ctx context.Context, subjectID int64, kind Kind) (*Summary, error) {
	key := fmt.Sprintf("earnings:summary:%s:%d", kind, subjectID)

	if c.rdb != nil {
		if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
			var cached Summary
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	report, err := c.svc.ComputeEarnings(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(report.Summary); err == nil {
			// cache failures are not the caller's problem
			_ = c.rdb.Set(ctx, key, raw, summaryTTL).Err()
		}
	}

	return &report.Summary, nil
}
