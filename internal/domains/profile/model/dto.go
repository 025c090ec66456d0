package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateProfileRequest creates a new memorial profile. Slug is optional;
// when empty it is derived from the name.
type CreateProfileRequest struct {
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	Photo      string         `json:"photo"`
	Birth      string         `json:"birth"`
	Death      string         `json:"death"`
	Eulogy     string         `json:"eulogy"`
	Story      string         `json:"story"`
	Cause      string         `json:"cause"`
	Family     []FamilyMember `json:"family"`
	LifePhotos []LifePhoto    `json:"lifePhotos"`
}

func (r CreateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Slug,
			validation.When(r.Slug != "",
				validation.Match(slugPattern).Error("slug must be lowercase letters, digits and hyphens"),
				validation.Length(1, 120),
			),
		),
	)
}

// UpdateProfileRequest edits content fields. Ownership, collections and
// counters are never updated through this path.
type UpdateProfileRequest struct {
	Name       string         `json:"name"`
	Photo      string         `json:"photo"`
	Birth      string         `json:"birth"`
	Death      string         `json:"death"`
	Eulogy     string         `json:"eulogy"`
	Story      string         `json:"story"`
	Cause      string         `json:"cause"`
	Family     []FamilyMember `json:"family"`
	LifePhotos []LifePhoto    `json:"lifePhotos"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
	)
}

// InviteContributorRequest invites an email as editor or viewer.
type InviteContributorRequest struct {
	Email string          `json:"email"`
	Role  ContributorRole `json:"role"`
}

func (r InviteContributorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Role,
			validation.When(r.Role != "",
				validation.In(RoleEditor, RoleViewer).Error("role must be editor or viewer"),
			),
		),
	)
}

// AcceptInvitationRequest accepts a pending invitation for the caller.
type AcceptInvitationRequest struct {
	ProfileSlug string `json:"profileSlug"`
}

func (r AcceptInvitationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProfileSlug, validation.Required.Error("profile slug is required")),
	)
}

// SubmitCommentRequest leaves a message on a profile. Author is a free
// display label; anonymous visitors may comment.
type SubmitCommentRequest struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

func (r SubmitCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 2000),
		),
		validation.Field(&r.Author, validation.Length(0, 100)),
	)
}

// SubmitStoryRequest adds a narrative story.
type SubmitStoryRequest struct {
	Content string `json:"content"`
}

func (r SubmitStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("story content is required"),
			validation.Length(1, 10000),
		),
	)
}

// SetStoryApprovalRequest approves or un-approves a story.
type SetStoryApprovalRequest struct {
	StoryID  string `json:"storyId"`
	Approved bool   `json:"approved"`
}

func (r SetStoryApprovalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StoryID, validation.Required.Error("story id is required")),
	)
}

// DeleteStoryRequest removes a story.
type DeleteStoryRequest struct {
	StoryID string `json:"storyId"`
}

func (r DeleteStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StoryID, validation.Required.Error("story id is required")),
	)
}

// AftercarePlanRequest replaces the profile's aftercare plan.
type AftercarePlanRequest struct {
	GoFundMeURL string                   `json:"goFundMeUrl"`
	Notes       string                   `json:"notes"`
	Checklist   []AftercareChecklistItem `json:"checklist"`
}

func (r AftercarePlanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GoFundMeURL, validation.When(r.GoFundMeURL != "", is.URL)),
		validation.Field(&r.Notes, validation.Length(0, 5000)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ProfileSummary is the public listing shape used by the explore page.
type ProfileSummary struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Photo   string `json:"photo,omitempty"`
	Birth   string `json:"birth,omitempty"`
	Death   string `json:"death,omitempty"`
	Candles int64  `json:"candles"`
}

// Summary projects a profile into its public listing shape.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:      p.ID,
		Slug:    p.Slug,
		Name:    p.Name,
		Photo:   p.Photo,
		Birth:   p.Birth,
		Death:   p.Death,
		Candles: p.Candles,
	}
}
