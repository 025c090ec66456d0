package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
	"memorial-backend/internal/domains/profile/repository"
	"memorial-backend/internal/domains/profile/workflow"
	"memorial-backend/internal/shared"
	"memorial-backend/internal/shared/utils"
	"memorial-backend/pkg/cache"
)

const (
	// How often a mutation retries when another writer wins the
	// compare-and-swap race on the same profile.
	maxMutationRetries = 3

	profileCacheTTL = 5 * time.Minute
)

type profileService struct {
	repo     repository.ProfileRepository
	cache    cache.Cache    // optional, nil disables caching
	notifier InviteNotifier // optional, nil disables invite emails
}

func NewProfileService(repo repository.ProfileRepository, c cache.Cache, notifier InviteNotifier) ProfileService {
	return &profileService{
		repo:     repo,
		cache:    c,
		notifier: notifier,
	}
}

// =====================================================
// PROFILE LIFECYCLE
// =====================================================

func (s *profileService) Create(ctx context.Context, ownerEmail string, req model.CreateProfileRequest) (*model.Profile, error) {
	if ownerEmail == "" {
		return nil, model.NewUnauthorizedError()
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}
	if !utils.IsValidSlug(slug) {
		return nil, model.NewValidationError("slug must be lowercase letters, digits and hyphens")
	}

	now := time.Now().UTC()
	p := &model.Profile{
		ID:           uuid.NewString(),
		Slug:         slug,
		Name:         req.Name,
		Photo:        req.Photo,
		Birth:        req.Birth,
		Death:        req.Death,
		Eulogy:       req.Eulogy,
		Story:        req.Story,
		Cause:        req.Cause,
		CreatedBy:    ownerEmail,
		Family:       req.Family,
		LifePhotos:   req.LifePhotos,
		Candles:      0,
		Contributors: []model.Contributor{},
		Comments:     []model.Comment{},
		Stories:      []model.Story{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Family == nil {
		p.Family = []model.FamilyMember{}
	}
	if p.LifePhotos == nil {
		p.LifePhotos = []model.LifePhoto{}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, model.ErrSlugTaken) {
			return nil, model.NewSlugTakenError(slug)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *profileService) GetBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	if s.cache != nil {
		cached := &model.Profile{}
		if found, err := s.cache.Get(ctx, profileCacheKey(slug), cached); err == nil && found {
			return cached, nil
		}
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return nil, model.NewProfileNotFoundError()
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileCacheKey(slug), p, profileCacheTTL); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("Failed to cache profile")
		}
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context) ([]model.ProfileSummary, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]model.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Summary())
	}
	return out, nil
}

func (s *profileService) Update(ctx context.Context, slug, caller string, req model.UpdateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	return s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.ApplyContentUpdate(p, g, req)
	})
}

func (s *profileService) Delete(ctx context.Context, slug, caller string) error {
	// Deletion cannot go through applyMutation (there is nothing to
	// persist afterwards) but runs the same load -> authorize sequence.
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return model.NewProfileNotFoundError()
		}
		return fmt.Errorf("get profile: %w", err)
	}

	g := access.Evaluate(p, caller)
	if !g.CanDeleteProfile() {
		return g.Deny("delete this profile")
	}

	if err := s.repo.Delete(ctx, slug); err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return model.NewProfileNotFoundError()
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	s.invalidate(ctx, slug)
	return nil
}

func (s *profileService) LightCandle(ctx context.Context, slug string) (int64, error) {
	var candles int64
	_, err := s.applyMutation(ctx, slug, "", func(p *model.Profile, g access.Grant) error {
		candles = workflow.LightCandle(p)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return candles, nil
}

func (s *profileService) SetAftercarePlan(ctx context.Context, slug, caller string, req model.AftercarePlanRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	return s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.SetAftercarePlan(p, g, req)
	})
}

func (s *profileService) AddLifePhoto(ctx context.Context, slug, caller string, photo model.LifePhoto) (*model.Profile, error) {
	return s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.AddLifePhoto(p, g, photo)
	})
}

// =====================================================
// CONTRIBUTORS
// =====================================================

func (s *profileService) ListContributors(ctx context.Context, slug, caller string) ([]model.Contributor, error) {
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	g := access.Evaluate(p, caller)
	if !g.CanViewContributors() {
		return nil, g.Deny("view contributors")
	}
	return p.Contributors, nil
}

func (s *profileService) InviteContributor(ctx context.Context, slug, caller, callerName string, req model.InviteContributorRequest) (*model.Contributor, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	var invited model.Contributor
	var profileName string
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		entry, err := workflow.Invite(p, g, req.Email, req.Role, time.Now().UTC())
		if err != nil {
			return err
		}
		invited = *entry
		profileName = p.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyInvite(ctx, shared.ContributorInvitePayload{
		Email:       invited.Email,
		InviterName: inviterLabel(callerName, caller),
		ProfileName: profileName,
		ProfileSlug: slug,
		Role:        string(invited.Role),
	})
	return &invited, nil
}

func (s *profileService) AcceptInvitation(ctx context.Context, slug, caller string) (*model.Contributor, error) {
	var accepted model.Contributor
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		entry, err := workflow.Accept(p, caller, time.Now().UTC())
		if err != nil {
			return err
		}
		accepted = *entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

func (s *profileService) RemoveContributor(ctx context.Context, slug, caller, targetEmail string) error {
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.Remove(p, g, targetEmail)
	})
	return err
}

// =====================================================
// COMMENTS
// =====================================================

func (s *profileService) SubmitComment(ctx context.Context, slug string, req model.SubmitCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	var comment model.Comment
	_, err := s.applyMutation(ctx, slug, "", func(p *model.Profile, g access.Grant) error {
		comment = *workflow.SubmitComment(p, req.Author, req.Message, time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *profileService) ApproveComment(ctx context.Context, slug, caller, commentID string) (*model.Comment, error) {
	var comment model.Comment
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		c, err := workflow.ApproveComment(p, g, commentID)
		if err != nil {
			return err
		}
		comment = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *profileService) DeleteComment(ctx context.Context, slug, caller, commentID string) error {
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.DeleteComment(p, g, commentID)
	})
	return err
}

// =====================================================
// STORIES
// =====================================================

func (s *profileService) ListStories(ctx context.Context, slug string) ([]model.Story, error) {
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return p.Stories, nil
}

func (s *profileService) SubmitStory(ctx context.Context, slug, caller, callerName string, req model.SubmitStoryRequest) (*model.Story, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	var story model.Story
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		st, err := workflow.SubmitStory(p, g, callerName, req.Content, time.Now().UTC())
		if err != nil {
			return err
		}
		story = *st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *profileService) SetStoryApproval(ctx context.Context, slug, caller string, req model.SetStoryApprovalRequest) (*model.Story, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	var story model.Story
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		st, err := workflow.SetStoryApproval(p, g, req.StoryID, req.Approved)
		if err != nil {
			return err
		}
		story = *st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *profileService) DeleteStory(ctx context.Context, slug, caller, storyID string) error {
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		return workflow.DeleteStory(p, g, storyID)
	})
	return err
}

// =====================================================
// STORYBOOK
// =====================================================

func (s *profileService) GenerateStorybook(ctx context.Context, slug, caller string) (*model.Storybook, error) {
	var book model.Storybook
	_, err := s.applyMutation(ctx, slug, caller, func(p *model.Profile, g access.Grant) error {
		b, err := workflow.GenerateStorybook(p, g, time.Now().UTC())
		if err != nil {
			return err
		}
		book = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// =====================================================
// MUTATION CHOKE POINT
// =====================================================

// applyMutation is the sole write path: load the current record,
// evaluate the caller's grant once, apply the workflow transition to the
// in-memory copy, and persist the whole record with compare-and-swap.
// A version conflict means another mutation landed first; the cycle
// restarts from a fresh load so no update is ever lost. Authorization
// and existence failures return before anything is written.
func (s *profileService) applyMutation(ctx context.Context, slug, caller string, fn func(p *model.Profile, g access.Grant) error) (*model.Profile, error) {
	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		p, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, model.ErrProfileNotFound) {
				return nil, model.NewProfileNotFoundError()
			}
			return nil, fmt.Errorf("get profile: %w", err)
		}

		g := access.Evaluate(p, caller)
		if err := fn(p, g); err != nil {
			return nil, err
		}

		p.UpdatedAt = time.Now().UTC()
		err = s.repo.Update(ctx, p)
		if errors.Is(err, model.ErrVersionConflict) {
			continue
		}
		if err != nil {
			if errors.Is(err, model.ErrProfileNotFound) {
				return nil, model.NewProfileNotFoundError()
			}
			return nil, fmt.Errorf("update profile: %w", err)
		}

		s.invalidate(ctx, slug)
		return p, nil
	}

	return nil, model.NewVersionConflictError()
}

func (s *profileService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profileCacheKey(slug)); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Failed to invalidate profile cache")
	}
}

func (s *profileService) notifyInvite(ctx context.Context, payload shared.ContributorInvitePayload) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyContributorInvite(ctx, payload); err != nil {
		// Best effort: the invitation itself already succeeded.
		log.Error().Err(err).
			Str("email", payload.Email).
			Str("slug", payload.ProfileSlug).
			Msg("Failed to enqueue invitation email")
	}
}

func profileCacheKey(slug string) string {
	return "profile:slug:" + slug
}

func inviterLabel(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
