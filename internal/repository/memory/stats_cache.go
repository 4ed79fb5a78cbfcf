package memory

import (
	"time"

	"booknotion-be/internal/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StatsCache keeps computed section statistics hot between reads. Entries are
// invalidated on notebook changes and expire on their own after 5 minutes.
type StatsCache struct {
	cache *cache.Cache
}

func NewStatsCache() *StatsCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &StatsCache{cache: c}
}

func key(sectionId uuid.UUID) string {
	return sectionId.String()
}

func (r *StatsCache) Save(stats *dto.SectionStatsResponse) {
	r.cache.Set(stats.SectionId.String(), stats, cache.DefaultExpiration)
}

func (r *StatsCache) Get(sectionId uuid.UUID) (*dto.SectionStatsResponse, bool) {
	if x, found := r.cache.Get(key(sectionId)); found {
		return x.(*dto.SectionStatsResponse), true
	}
	return nil, false
}

func (r *StatsCache) Invalidate(sectionId uuid.UUID) {
	r.cache.Delete(key(sectionId))
}
