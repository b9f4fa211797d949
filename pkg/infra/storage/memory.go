package storage

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/domain/interfaces"
	"github.com/m-mizutani/salvage/pkg/domain/model"
	"github.com/m-mizutani/salvage/pkg/utils/async"
)

// DefaultTTL is how long an artifact stays downloadable after conversion
const DefaultTTL = 15 * time.Minute

type memoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]*model.Artifact
	ttl       time.Duration
	now       func() time.Time
}

// Option is a functional option for the in-memory store
type Option func(*memoryStore)

// WithTTL sets the artifact retention period
func WithTTL(ttl time.Duration) Option {
	return func(s *memoryStore) {
		s.ttl = ttl
	}
}

// WithClock replaces the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *memoryStore) {
		s.now = now
	}
}

// NewMemory creates an in-memory ArtifactStore. Artifacts expire after the
// configured TTL; expired entries are swept asynchronously on each Put.
func NewMemory(opts ...Option) interfaces.ArtifactStore {
	s := &memoryStore{
		artifacts: make(map[string]*model.Artifact),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put retains an artifact and schedules a sweep of expired ones
func (s *memoryStore) Put(ctx context.Context, artifact *model.Artifact) error {
	if artifact == nil || artifact.ID == "" {
		return goerr.New("artifact must have an ID")
	}

	s.mu.Lock()
	s.artifacts[artifact.ID] = artifact
	s.mu.Unlock()

	async.Dispatch(ctx, func(ctx context.Context) error {
		s.sweep(ctx)
		return nil
	})

	return nil
}

// Get returns the artifact for id. Expired artifacts are treated as absent
// even before a sweep has removed them.
func (s *memoryStore) Get(ctx context.Context, id string) (*model.Artifact, error) {
	s.mu.RLock()
	artifact, ok := s.artifacts[id]
	s.mu.RUnlock()

	if !ok || s.expired(artifact) {
		return nil, goerr.New("artifact not found", goerr.V("artifact_id", id))
	}
	return artifact, nil
}

// Delete removes an artifact; unknown IDs are ignored
func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.artifacts, id)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) expired(artifact *model.Artifact) bool {
	return s.now().Sub(artifact.CreatedAt) > s.ttl
}

// sweep drops all expired artifacts
func (s *memoryStore) sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, artifact := range s.artifacts {
		if s.expired(artifact) {
			delete(s.artifacts, id)
			removed++
		}
	}

	if removed > 0 {
		ctxlog.From(ctx).Debug("Swept expired artifacts", "removed", removed)
	}
}
