package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"eventspot/internal/models"
	"eventspot/internal/repositories"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const listCacheKey = "events:list"

// similarLimit caps how many related events a detail page shows.
const similarLimit = 4

// QueryService serves the read path: listings, lookups by slug and the
// similar-events heuristic. Listings may be served from a short-lived Redis
// cache; every cache failure falls through to the repository.
type QueryService struct {
	events repositories.EventRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewQueryService(events repositories.EventRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *QueryService {
	return &QueryService{
		events: events,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *QueryService) List(ctx context.Context) ([]models.Event, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, listCacheKey).Result()
		if err == nil {
			var events []models.Event
			if err := json.Unmarshal([]byte(cached), &events); err == nil {
				return events, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("listing cache read failed", zap.Error(err))
		}
	}

	events, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(events); err == nil {
			if err := s.cache.Set(ctx, listCacheKey, encoded, s.ttl).Err(); err != nil {
				s.logger.Warn("listing cache write failed", zap.Error(err))
			}
		}
	}

	return events, nil
}

// InvalidateList drops the cached listing. Called after a successful create
// so a fresh event shows up without waiting out the TTL.
func (s *QueryService) InvalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func (s *QueryService) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return s.events.FindBySlug(ctx, slug)
}

// Similar returns other events related to the one named by slug: events
// sharing at least one tag, ranked by how many tags they share and then by
// recency. When nothing overlaps, the newest other events fill in so the
// detail page is never bare. The subject event itself is never included.
func (s *QueryService) Similar(ctx context.Context, slug string) ([]models.Event, error) {
	subject, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	all, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tagSet := make(map[string]bool, len(subject.Tags))
	for _, tag := range subject.Tags {
		tagSet[tag] = true
	}

	var others, matches []models.Event
	shared := make(map[string]int)
	for _, event := range all {
		if event.Slug == subject.Slug {
			continue
		}
		others = append(others, event)
		count := 0
		for _, tag := range event.Tags {
			if tagSet[tag] {
				count++
			}
		}
		if count > 0 {
			shared[event.Slug] = count
			matches = append(matches, event)
		}
	}

	if len(matches) == 0 {
		matches = others
	} else {
		// FindAll is createdAt descending; a stable sort keeps that order
		// among events sharing the same number of tags.
		sort.SliceStable(matches, func(i, j int) bool {
			return shared[matches[i].Slug] > shared[matches[j].Slug]
		})
	}

	if len(matches) > similarLimit {
		matches = matches[:similarLimit]
	}
	return matches, nil
}
