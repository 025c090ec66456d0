package service

import (
	"context"

	"memorial-backend/internal/domains/profile/model"
	"memorial-backend/internal/shared"
)

// ProfileService is the aggregate boundary for memorial profiles. All
// writes funnel through one load -> authorize -> transition -> persist
// cycle, so sub-entities can never be mutated without the aggregate's
// invariants being rechecked.
//
// caller is the verified email of the requester, "" when anonymous.
type ProfileService interface {
	Create(ctx context.Context, ownerEmail string, req model.CreateProfileRequest) (*model.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*model.Profile, error)
	List(ctx context.Context) ([]model.ProfileSummary, error)
	Update(ctx context.Context, slug, caller string, req model.UpdateProfileRequest) (*model.Profile, error)
	Delete(ctx context.Context, slug, caller string) error

	LightCandle(ctx context.Context, slug string) (int64, error)
	SetAftercarePlan(ctx context.Context, slug, caller string, req model.AftercarePlanRequest) (*model.Profile, error)
	AddLifePhoto(ctx context.Context, slug, caller string, photo model.LifePhoto) (*model.Profile, error)

	ListContributors(ctx context.Context, slug, caller string) ([]model.Contributor, error)
	InviteContributor(ctx context.Context, slug, caller, callerName string, req model.InviteContributorRequest) (*model.Contributor, error)
	AcceptInvitation(ctx context.Context, slug, caller string) (*model.Contributor, error)
	RemoveContributor(ctx context.Context, slug, caller, targetEmail string) error

	SubmitComment(ctx context.Context, slug string, req model.SubmitCommentRequest) (*model.Comment, error)
	ApproveComment(ctx context.Context, slug, caller, commentID string) (*model.Comment, error)
	DeleteComment(ctx context.Context, slug, caller, commentID string) error

	ListStories(ctx context.Context, slug string) ([]model.Story, error)
	SubmitStory(ctx context.Context, slug, caller, callerName string, req model.SubmitStoryRequest) (*model.Story, error)
	SetStoryApproval(ctx context.Context, slug, caller string, req model.SetStoryApprovalRequest) (*model.Story, error)
	DeleteStory(ctx context.Context, slug, caller, storyID string) error

	GenerateStorybook(ctx context.Context, slug, caller string) (*model.Storybook, error)
}

// InviteNotifier delivers the invitation email side channel. Delivery is
// best-effort: a failure is logged and never fails the invitation.
type InviteNotifier interface {
	NotifyContributorInvite(ctx context.Context, payload shared.ContributorInvitePayload) error
}
