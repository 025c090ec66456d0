package workflow

import (
	"time"

	"github.com/google/uuid"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

// SubmitStory adds a narrative story. Only the owner or an accepted
// editor may submit; the owner's stories are approved on arrival, an
// editor's wait for owner approval.
func SubmitStory(p *model.Profile, g access.Grant, authorName, content string, now time.Time) (*model.Story, error) {
	if !g.CanSubmitStory() {
		return nil, g.Deny("add stories")
	}
	if authorName == "" {
		authorName = "Anonymous"
	}

	p.Stories = append(p.Stories, model.Story{
		ID:          uuid.NewString(),
		Content:     content,
		Author:      authorName,
		AuthorEmail: g.Identity,
		CreatedAt:   now,
		Approved:    g.Level == access.Owner,
	})
	return &p.Stories[len(p.Stories)-1], nil
}

// SetStoryApproval sets the approval flag to the requested value. Unlike
// comments, story approval is reversible. Owner only.
func SetStoryApproval(p *model.Profile, g access.Grant, storyID string, approved bool) (*model.Story, error) {
	if !g.CanModerateStories() {
		return nil, g.Deny("approve stories")
	}

	story := p.FindStory(storyID)
	if story == nil {
		return nil, model.NewStoryNotFoundError()
	}

	story.Approved = approved
	return story, nil
}

// DeleteStory removes a story from the profile. Owner only.
func DeleteStory(p *model.Profile, g access.Grant, storyID string) error {
	if !g.CanModerateStories() {
		return g.Deny("delete stories")
	}

	for i := range p.Stories {
		if p.Stories[i].ID == storyID {
			p.Stories = append(p.Stories[:i], p.Stories[i+1:]...)
			return nil
		}
	}
	return model.NewStoryNotFoundError()
}
