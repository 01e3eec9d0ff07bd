package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/internal/storage"
	"github.com/cardano2vn/group-signup/models"
)

const cacheKey = "roster:students"

// Reader derives the roster views (full list, per-group counts,
// fullness) from the backing store. There is no in-process state:
// every call re-reads the full table, unless a Redis client is
// configured, in which case the list is served cache-aside with a
// short TTL and invalidated on each successful append.
type Reader struct {
	store storage.Store
	rdb   *redis.Client // nil disables caching
	cfg   *config.Config
}

func New(store storage.Store, rdb *redis.Client, cfg *config.Config) *Reader {
	return &Reader{store: store, rdb: rdb, cfg: cfg}
}

// List returns every registration currently in the store.
func (r *Reader) List(ctx context.Context) ([]models.Registration, error) {
	if r.rdb != nil {
		cached, err := r.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var students []models.Registration
			if json.Unmarshal([]byte(cached), &students) == nil {
				return students, nil
			}
			slog.Warn("Failed to unmarshal cached roster, falling back to store")
		} else if err != redis.Nil {
			slog.Error("Redis GET command failed", "error", err)
		}
	}

	students, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster: fetch students: %w", err)
	}

	if r.rdb != nil {
		if data, err := json.Marshal(students); err == nil {
			ttl := r.cfg.RosterCacheTTL
			if ttl <= 0 {
				ttl = 5 * time.Second
			}
			if err := r.rdb.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
				slog.Error("Failed to cache roster", "error", err)
			}
		}
	}
	return students, nil
}

// Invalidate drops the cached roster. Called after every successful
// append so the next read sees the new row even within the TTL.
func (r *Reader) Invalidate(ctx context.Context) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, cacheKey).Err(); err != nil {
		slog.Error("Failed to invalidate roster cache", "error", err)
	}
}

// GroupCounts maps group name to registration count. Groups with no
// registrants are absent; callers default to zero.
func (r *Reader) GroupCounts(ctx context.Context) (map[string]int, error) {
	students, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, s := range students {
		counts[s.Group]++
	}
	return counts, nil
}

// IsGroupFull reports whether name has reached the configured capacity.
func (r *Reader) IsGroupFull(ctx context.Context, name string) (bool, error) {
	counts, err := r.GroupCounts(ctx)
	if err != nil {
		return false, err
	}
	return counts[name] >= r.cfg.MaxStudentsPerGroup, nil
}

// AvailableGroups returns the configured groups that still have room,
// in configuration order.
func (r *Reader) AvailableGroups(ctx context.Context) ([]string, error) {
	counts, err := r.GroupCounts(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]string, 0, len(r.cfg.Groups))
	for _, name := range r.cfg.Groups {
		if counts[name] < r.cfg.MaxStudentsPerGroup {
			available = append(available, name)
		}
	}
	return available, nil
}

// GroupStatuses returns the occupancy projection for every configured
// group, zero-count groups included, in configuration order.
func (r *Reader) GroupStatuses(ctx context.Context) ([]models.GroupStatus, error) {
	counts, err := r.GroupCounts(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make([]models.GroupStatus, 0, len(r.cfg.Groups))
	for _, name := range r.cfg.Groups {
		statuses = append(statuses, models.GroupStatus{
			Name:        name,
			Count:       counts[name],
			IsFull:      counts[name] >= r.cfg.MaxStudentsPerGroup,
			MaxStudents: r.cfg.MaxStudentsPerGroup,
		})
	}
	return statuses, nil
}
