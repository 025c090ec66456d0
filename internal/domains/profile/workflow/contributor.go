// Package workflow applies contribution state transitions to an
// in-memory copy of a profile. Functions here are pure and synchronous:
// they validate the caller's grant, mutate the copy, and return an
// error without touching storage. The aggregate service owns
// persistence.
package workflow

import (
	"time"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

// Invite appends a pending contributor entry. Only the owner may invite;
// the owner themselves and existing contributors are rejected.
func Invite(p *model.Profile, g access.Grant, email string, role model.ContributorRole, now time.Time) (*model.Contributor, error) {
	if !g.CanManageContributors() {
		return nil, g.Deny("add contributors")
	}
	if role == "" {
		role = model.RoleEditor
	}
	if !role.Valid() {
		return nil, model.NewValidationError("role must be editor or viewer")
	}
	if email == p.CreatedBy {
		return nil, model.NewSelfInviteError()
	}
	if p.FindContributor(email) != nil {
		return nil, model.NewDuplicateContributorError(email)
	}

	p.Contributors = append(p.Contributors, model.Contributor{
		Email:     email,
		Role:      role,
		InvitedAt: now,
		InvitedBy: g.Identity,
	})
	return &p.Contributors[len(p.Contributors)-1], nil
}

// Accept marks the caller's pending invitation as accepted. Accepting an
// already-active grant is a no-op rather than an error, so a stale
// invitation link never breaks.
func Accept(p *model.Profile, identity string, now time.Time) (*model.Contributor, error) {
	if identity == "" {
		return nil, model.NewUnauthorizedError()
	}

	entry := p.FindContributor(identity)
	if entry == nil {
		return nil, model.NewInvitationNotFoundError()
	}
	if entry.Accepted() {
		return entry, nil
	}

	ts := now
	entry.AcceptedAt = &ts
	return entry, nil
}

// Remove deletes a contributor entry entirely, pending or accepted.
// Owner only.
func Remove(p *model.Profile, g access.Grant, targetEmail string) error {
	if !g.CanManageContributors() {
		return g.Deny("remove contributors")
	}

	for i := range p.Contributors {
		if p.Contributors[i].Email == targetEmail {
			p.Contributors = append(p.Contributors[:i], p.Contributors[i+1:]...)
			return nil
		}
	}
	return model.NewInvitationNotFoundError()
}
