package repository

import (
	"context"

	"memorial-backend/internal/domains/profile/model"
)

// ProfileRepository is the record store for memorial profiles. Every
// implementation hands out deep copies and enforces optimistic
// concurrency: Update compares the profile's version stamp against the
// stored one and fails with model.ErrVersionConflict when another write
// landed in between. The aggregate service retries on conflict, which
// closes the read-modify-write lost-update window.
type ProfileRepository interface {
	// Create inserts a new profile. Fails with model.ErrSlugTaken when
	// the slug is already in use.
	Create(ctx context.Context, p *model.Profile) error

	// GetBySlug loads one profile. Fails with model.ErrProfileNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]*model.Profile, error)

	// Update persists the full record in one write, compare-and-swap on
	// the version stamp. On success the stored version is incremented.
	Update(ctx context.Context, p *model.Profile) error

	// Delete removes the record entirely; nested entities go with it.
	Delete(ctx context.Context, slug string) error

	// DeleteByOwner removes every profile created by the given identity
	// and reports how many were deleted. Used by account deletion.
	DeleteByOwner(ctx context.Context, ownerEmail string) (int, error)
}
