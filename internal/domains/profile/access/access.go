// Package access computes a caller's effective role on a memorial
// profile. Every mutation in the service layer evaluates exactly one
// Grant and hands it to the workflow, so permission rules live in one
// place instead of being recomputed at call sites.
package access

import (
	"memorial-backend/internal/domains/profile/model"
)

// Level is the caller's effective role on a profile.
type Level int

const (
	// None: anonymous, or authenticated with no grant on the profile.
	None Level = iota
	// Pending: invited but not yet accepted. Carries no capabilities.
	Pending
	// Viewer: accepted viewer grant.
	Viewer
	// Editor: accepted editor grant.
	Editor
	// Owner: the identity that created the profile.
	Owner
)

func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Editor:
		return "editor"
	case Viewer:
		return "viewer"
	case Pending:
		return "pending"
	default:
		return "none"
	}
}

// Grant is the result of evaluating a caller against a profile.
type Grant struct {
	// Identity is the caller's verified email, "" when anonymous.
	Identity string
	Level    Level
	// InvitedRole is set when Level is Pending: the role the caller
	// will hold once they accept.
	InvitedRole model.ContributorRole
}

// Evaluate computes the caller's grant. It is a pure function of the
// profile's owner, its contributor list and the identity.
func Evaluate(p *model.Profile, identity string) Grant {
	if identity == "" {
		return Grant{Level: None}
	}
	if identity == p.CreatedBy {
		return Grant{Identity: identity, Level: Owner}
	}

	entry := p.FindContributor(identity)
	if entry == nil {
		return Grant{Identity: identity, Level: None}
	}
	if !entry.Accepted() {
		return Grant{Identity: identity, Level: Pending, InvitedRole: entry.Role}
	}
	if entry.Role == model.RoleEditor {
		return Grant{Identity: identity, Level: Editor}
	}
	return Grant{Identity: identity, Level: Viewer}
}

// Capability checks. Storybook generation additionally requires enough
// approved stories; that precondition is enforced by the workflow.

func (g Grant) CanEdit() bool {
	return g.Level == Owner || g.Level == Editor
}

func (g Grant) CanManageContributors() bool {
	return g.Level == Owner
}

func (g Grant) CanViewContributors() bool {
	return g.Level == Owner || g.Level == Editor || g.Level == Viewer
}

func (g Grant) CanModerateComments() bool {
	return g.Level == Owner
}

func (g Grant) CanSubmitStory() bool {
	return g.Level == Owner || g.Level == Editor
}

func (g Grant) CanModerateStories() bool {
	return g.Level == Owner
}

func (g Grant) CanGenerateStorybook() bool {
	return g.Level == Owner || g.Level == Editor
}

func (g Grant) CanDeleteProfile() bool {
	return g.Level == Owner
}

// Deny converts a failed capability check into the right error: an
// anonymous caller should be told to authenticate, an authenticated but
// unprivileged caller should not.
func (g Grant) Deny(action string) *model.ProfileError {
	if g.Identity == "" {
		return model.NewUnauthorizedError()
	}
	return model.NewForbiddenError(action)
}
