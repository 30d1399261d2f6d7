package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/quickstitch/internal/stitcher"
)

// ErrPlanNotFound is returned for plan ids that were never issued or have
// been evicted.
var ErrPlanNotFound = errors.New("plan not found")

// PlanCache holds stitched strips between a stitch_plan call and the
// stitch_export calls that follow it.
//
// Each plan keeps its whole strip in memory until Evict or Clear is called;
// clients are expected to evict plans they no longer need.
//
// PlanCache is safe for concurrent use by multiple goroutines.
type PlanCache struct {
	mu    sync.RWMutex
	plans map[string]*stitcher.Stitched
}

// NewPlanCache creates an empty plan cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		plans: make(map[string]*stitcher.Stitched),
	}
}

// Put stores a plan under a fresh random id and returns the id.
func (c *PlanCache) Put(plan *stitcher.Stitched) string {
	id := uuid.NewString()
	c.mu.Lock()
	c.plans[id] = plan
	c.mu.Unlock()
	return id
}

// Get returns the plan stored under id.
func (c *PlanCache) Get(id string) (*stitcher.Stitched, error) {
	c.mu.RLock()
	plan, ok := c.plans[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// Evict removes a plan and reports whether it was present.
func (c *PlanCache) Evict(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.plans[id]; !ok {
		return false
	}
	delete(c.plans, id)
	return true
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

// Clear removes every plan.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	c.plans = make(map[string]*stitcher.Stitched)
	c.mu.Unlock()
}
