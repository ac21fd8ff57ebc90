package usecase

import (
	"context"
	"sync"
	"time"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/progress"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/logger"
)

const defaultCatalogTTL = 5 * time.Minute

// CatalogCache memoizes the validated badge catalog. The catalog is
// read-mostly; admin writes call Invalidate, and the TTL bounds staleness
// for instances that did not observe the write. Malformed templates are
// dropped at load and reported, so computation always runs on a clean
// catalog.
type CatalogCache struct {
	badgeRepo repository.BadgeRepository
	ttl       time.Duration

	mu        sync.RWMutex
	templates []entity.BadgeTemplate
	loadedAt  time.Time
}

func NewCatalogCache(badgeRepo repository.BadgeRepository, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{
		badgeRepo: badgeRepo,
		ttl:       ttl,
	}
}

func (c *CatalogCache) Get(ctx context.Context) ([]entity.BadgeTemplate, error) {
	c.mu.RLock()
	if c.templates != nil && time.Since(c.loadedAt) < c.ttl {
		templates := c.templates
		c.mu.RUnlock()
		return templates, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.templates != nil && time.Since(c.loadedAt) < c.ttl {
		return c.templates, nil
	}

	all, err := c.badgeRepo.List(ctx)
	if err != nil {
		// Serve the stale catalog rather than failing reads.
		if c.templates != nil {
			logger.Warn("Failed to refresh badge catalog, serving stale copy: %v", err)
			return c.templates, nil
		}
		return nil, err
	}

	active := all[:0]
	for _, t := range all {
		if t.IsActive {
			active = append(active, t)
		}
	}

	valid, problems := progress.ValidateCatalog(active)
	for _, problem := range problems {
		logger.Warn("Excluding malformed badge template: %v", problem)
	}

	c.templates = valid
	c.loadedAt = time.Now()
	return c.templates, nil
}

// Invalidate drops the cached catalog. Called after every admin write.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.templates = nil
	c.mu.Unlock()
}
