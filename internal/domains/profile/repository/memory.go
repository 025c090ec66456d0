package repository

import (
	"context"
	"sync"

	"memorial-backend/internal/domains/profile/model"
)

// memoryProfileRepository is a map-backed store used in tests and local
// development. It honors the same version-stamp contract as the
// Postgres implementation.
type memoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfileRepository{
		profiles: make(map[string]*model.Profile),
	}
}

func (r *memoryProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Slug]; exists {
		return model.ErrSlugTaken
	}

	stored := p.Clone()
	stored.Version = 1
	r.profiles[p.Slug] = stored
	p.Version = 1
	return nil
}

func (r *memoryProfileRepository) GetBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.profiles[slug]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return stored.Clone(), nil
}

func (r *memoryProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *memoryProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.profiles[p.Slug]
	if !ok {
		return model.ErrProfileNotFound
	}
	if stored.Version != p.Version {
		return model.ErrVersionConflict
	}

	next := p.Clone()
	next.Version = stored.Version + 1
	r.profiles[p.Slug] = next
	p.Version = next.Version
	return nil
}

func (r *memoryProfileRepository) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[slug]; !ok {
		return model.ErrProfileNotFound
	}
	delete(r.profiles, slug)
	return nil
}

func (r *memoryProfileRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for slug, p := range r.profiles {
		if p.CreatedBy == ownerEmail {
			delete(r.profiles, slug)
			deleted++
		}
	}
	return deleted, nil
}
