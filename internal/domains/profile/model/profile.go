package model

import (
	"encoding/json"
	"time"
)

// =====================================================
// MEMORIAL PROFILE AGGREGATE
// =====================================================

// ContributorRole is the access level granted by an invitation.
type ContributorRole string

const (
	RoleEditor ContributorRole = "editor"
	RoleViewer ContributorRole = "viewer"
)

func (r ContributorRole) Valid() bool {
	return r == RoleEditor || r == RoleViewer
}

// Contributor is a standing or pending access grant on a profile,
// keyed by email. AcceptedAt is set exactly once, by the invitee.
type Contributor struct {
	Email      string          `json:"email"`
	Role       ContributorRole `json:"role"`
	InvitedAt  time.Time       `json:"invitedAt"`
	AcceptedAt *time.Time      `json:"acceptedAt,omitempty"`
	InvitedBy  string          `json:"invitedBy"`
}

// Accepted reports whether the invitation has been accepted.
func (c *Contributor) Accepted() bool {
	return c.AcceptedAt != nil
}

// Comment is a free-text message left on a profile. The author is a
// display label, not a verified identity: anonymous visitors may comment.
type Comment struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Approved  bool      `json:"approved"`
}

// Story is a longer narrative submission, always tied to a verified
// submitter, eligible for storybook aggregation once approved.
type Story struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	Approved    bool      `json:"approved"`
}

// StorybookPage is one ordered page of a generated storybook.
type StorybookPage struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Photo   string `json:"photo,omitempty"`
	Author  string `json:"author,omitempty"`
	Order   int    `json:"order"`
}

// Storybook is a derived artifact built from approved stories.
// Regeneration replaces it wholesale; there is no version history.
type Storybook struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Pages       []StorybookPage `json:"pages"`
	CreatedAt   time.Time       `json:"createdAt"`
	GeneratedBy string          `json:"generatedBy"`
}

type FamilyMember struct {
	First        string `json:"first"`
	Last         string `json:"last"`
	Photo        string `json:"photo,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Description  string `json:"description,omitempty"`
}

type LifePhoto struct {
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
}

type AftercareChecklistItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type AftercarePlan struct {
	GoFundMeURL string                   `json:"goFundMeUrl,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	Checklist   []AftercareChecklistItem `json:"checklist"`
}

// Profile is the root aggregate: one memorial record per deceased
// individual. It exclusively owns its nested contributors, comments,
// stories and storybook; they have no lifecycle outside the profile.
type Profile struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Photo     string `json:"photo,omitempty"`
	Birth     string `json:"birth,omitempty"`
	Death     string `json:"death,omitempty"`
	Eulogy    string `json:"eulogy,omitempty"`
	Story     string `json:"story,omitempty"`
	Cause     string `json:"cause,omitempty"`
	CreatedBy string `json:"createdBy"`

	Family     []FamilyMember `json:"family"`
	LifePhotos []LifePhoto    `json:"lifePhotos"`

	Candles            int64          `json:"candles"`
	Contributors       []Contributor  `json:"contributors"`
	Comments           []Comment      `json:"comments"`
	Stories            []Story        `json:"stories"`
	GeneratedStorybook *Storybook     `json:"generatedStorybook,omitempty"`
	AftercarePlan      *AftercarePlan `json:"aftercarePlan,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Version is the optimistic-concurrency stamp maintained by the
	// repository. It is not part of the persisted document body.
	Version int64 `json:"-"`
}

// Clone returns a deep copy. Repositories hand out copies so callers can
// never mutate the stored record without going through an update.
func (p *Profile) Clone() *Profile {
	raw, err := json.Marshal(p)
	if err != nil {
		// The aggregate is plain data; marshal cannot fail.
		panic(err)
	}
	out := &Profile{}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	out.Version = p.Version
	return out
}

// FindContributor returns the contributor entry for email, or nil.
func (p *Profile) FindContributor(email string) *Contributor {
	for i := range p.Contributors {
		if p.Contributors[i].Email == email {
			return &p.Contributors[i]
		}
	}
	return nil
}

// FindComment returns the comment with the given id, or nil.
func (p *Profile) FindComment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// FindStory returns the story with the given id, or nil.
func (p *Profile) FindStory(id string) *Story {
	for i := range p.Stories {
		if p.Stories[i].ID == id {
			return &p.Stories[i]
		}
	}
	return nil
}

// ApprovedStories returns the approved stories in submission order.
func (p *Profile) ApprovedStories() []Story {
	out := make([]Story, 0, len(p.Stories))
	for _, s := range p.Stories {
		if s.Approved {
			out = append(out, s)
		}
	}
	return out
}
