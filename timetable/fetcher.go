package timetable

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"

	"github.com/muc-transit/departure-board/config"
	"github.com/muc-transit/departure-board/dbapi"
)

// TimetableAPI is the slice of the upstream client the fetcher needs.
type TimetableAPI interface {
	GetPlan(ctx context.Context, stationID int64, date, hour string) (*dbapi.Timetable, error)
	GetChanges(ctx context.Context, stationID int64) (*dbapi.Timetable, error)
}

// Fetcher retrieves and parses the two feeds. Baseline results are cached
// per (station, date, hour); feed failures are negative-cached under a
// shorter TTL so a down upstream is not hammered while still being retried
// soon. The changes feed is never cached.
type Fetcher struct {
	api    TimetableAPI
	parser *Parser
	cache  gcache.Cache
	ttl    time.Duration
	negTTL time.Duration
	locks  keyedMutex
}

type cachedPlan struct {
	events []StopEvent
	err    error
}

func NewFetcher(api TimetableAPI, parser *Parser, cfg config.TimetableConfig) *Fetcher {
	size := cfg.CacheSize
	if size <= 0 {
		size = 256
	}
	return &Fetcher{
		api:    api,
		parser: parser,
		cache:  gcache.New(size).LRU().Build(),
		ttl:    cfg.CacheTTL(),
		negTTL: cfg.NegativeCacheTTL(),
	}
}

// FetchBaseline returns the planned stop events for one station-hour slice.
// On feed failure it returns an empty slice together with the error, so the
// caller can keep rendering partial data while still being able to tell a
// dead hour from an empty one.
func (f *Fetcher) FetchBaseline(ctx context.Context, stationID int64, date, hour string) ([]StopEvent, error) {
	key := fmt.Sprintf("plan|%d|%s|%s", stationID, date, hour)
	if v, err := f.cache.Get(key); err == nil {
		entry := v.(cachedPlan)
		return entry.events, entry.err
	}
	// Per-key lock so concurrent requests for the same slice do not both hit
	// the upstream. Duplicate fetches would be correct but wasteful.
	unlock := f.locks.lock(key)
	defer unlock()
	if v, err := f.cache.Get(key); err == nil {
		entry := v.(cachedPlan)
		return entry.events, entry.err
	}
	tt, err := f.api.GetPlan(ctx, stationID, date, hour)
	if err != nil {
		_ = f.cache.SetWithExpire(key, cachedPlan{err: err}, f.negTTL)
		return nil, err
	}
	events := f.parser.ParseBaseline(tt)
	_ = f.cache.SetWithExpire(key, cachedPlan{events: events}, f.ttl)
	return events, nil
}

// FetchChanges returns the live change records for a station, keyed by stop
// id. Changes are not hour-bucketed and not cached.
func (f *Fetcher) FetchChanges(ctx context.Context, stationID int64) (map[string]StopEvent, error) {
	tt, err := f.api.GetChanges(ctx, stationID)
	if err != nil {
		return nil, err
	}
	return f.parser.ParseChanges(tt), nil
}

// keyedMutex hands out one mutex per cache key.
type keyedMutex struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.held == nil {
		k.held = map[string]*sync.Mutex{}
	}
	m, ok := k.held[key]
	if !ok {
		m = &sync.Mutex{}
		k.held[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
