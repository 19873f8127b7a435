// Package service serves curated state hunting regulations through an
// explicit TTL cache, so a future remote regulations source can be swapped in
// without changing callers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

// DefaultTTL is how long a loaded state's regulations are served before being
// reloaded from the source.
const DefaultTTL = 24 * time.Hour

// Loader fetches one state's regulations from the source of truth.
type Loader interface {
	Load(ctx context.Context, state string) (*types.StateRegulations, error)
}

// StaticLoader serves the curated in-repo regulation tables.
type StaticLoader struct {
	states map[string]types.StateRegulations
}

// NewStaticLoader returns a loader over the seeded state tables.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{states: seededRegulations()}
}

func (l *StaticLoader) Load(ctx context.Context, state string) (*types.StateRegulations, error) {
	regs, ok := l.states[state]
	if !ok {
		return nil, fmt.Errorf("regulations for state %s: %w", state, store.ErrNotFound)
	}
	return &regs, nil
}

type cachedEntry struct {
	value      *types.StateRegulations
	insertedAt time.Time
}

// RegulationsService caches loader results per state with a fixed TTL,
// checked lazily on each read.
type RegulationsService struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cachedEntry
}

// NewRegulationsService wires the service. ttl <= 0 selects DefaultTTL; now
// defaults to time.Now when nil.
func NewRegulationsService(loader Loader, ttl time.Duration, now func() time.Time) *RegulationsService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &RegulationsService{
		loader: loader,
		ttl:    ttl,
		now:    now,
		cache:  make(map[string]cachedEntry),
	}
}

// GetStateRegulations returns the regulations for a two-letter state code,
// serving from cache while the entry is fresh.
func (s *RegulationsService) GetStateRegulations(ctx context.Context, state string) (*types.StateRegulations, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	if len(code) != 2 {
		return nil, apperrors.ValidationFailed("Invalid state code", "expected a two-letter state code")
	}

	s.mu.Lock()
	entry, ok := s.cache[code]
	s.mu.Unlock()
	if ok && s.now().Sub(entry.insertedAt) < s.ttl {
		return entry.value, nil
	}

	regs, err := s.loader.Load(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("StateRegulations", code)
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[code] = cachedEntry{value: regs, insertedAt: s.now()}
	s.mu.Unlock()

	logger.GetLogger().Debugw("Regulations loaded", "state", code, "last_updated", regs.LastUpdated)
	return regs, nil
}

// CoveredStates lists the state codes the static loader can serve.
func (l *StaticLoader) CoveredStates() []string {
	states := make([]string, 0, len(l.states))
	for code := range l.states {
		states = append(states, code)
	}
	return states
}
