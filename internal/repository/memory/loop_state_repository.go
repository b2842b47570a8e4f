package memory

import (
	"time"

	"exam-companion-be/pkg/studyloop"

	"github.com/patrickmn/go-cache"
)

// LoopStateRepository keeps per-session study loop state in process memory.
// State is disposable: losing it only means the next student message is
// treated as a fresh question.
type LoopStateRepository struct {
	cache *cache.Cache
}

func NewLoopStateRepository() *LoopStateRepository {
	// Default expiration of 1 hour, purge of expired items every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &LoopStateRepository{
		cache: c,
	}
}

// Save stores a snapshot of the state. The caller keeps its own copy.
func (r *LoopStateRepository) Save(sessionID string, state *studyloop.State) {
	cp := *state
	r.cache.Set(sessionID, &cp, cache.DefaultExpiration)
}

// Get returns a private copy so concurrent turns on the same session never
// mutate shared state. Last Save wins.
func (r *LoopStateRepository) Get(sessionID string) (*studyloop.State, bool) {
	if x, found := r.cache.Get(sessionID); found {
		cp := *x.(*studyloop.State)
		return &cp, true
	}
	return nil, false
}

func (r *LoopStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
