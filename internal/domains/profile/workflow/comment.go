package workflow

import (
	"time"

	"github.com/google/uuid"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

// SubmitComment appends a comment in the unapproved state. No
// authorization: anonymous visitors may leave messages, and the author
// field is a display label rather than a verified identity.
func SubmitComment(p *model.Profile, author, message string, now time.Time) *model.Comment {
	if author == "" {
		author = "Anonymous"
	}

	p.Comments = append(p.Comments, model.Comment{
		ID:        uuid.NewString(),
		Message:   message,
		Author:    author,
		CreatedAt: now,
		Approved:  false,
	})
	return &p.Comments[len(p.Comments)-1]
}

// ApproveComment makes a comment publicly visible. Owner only; approving
// twice is a no-op.
func ApproveComment(p *model.Profile, g access.Grant, commentID string) (*model.Comment, error) {
	if !g.CanModerateComments() {
		return nil, g.Deny("approve comments")
	}

	comment := p.FindComment(commentID)
	if comment == nil {
		return nil, model.NewCommentNotFoundError()
	}

	comment.Approved = true
	return comment, nil
}

// DeleteComment removes a comment from the profile. Owner only.
func DeleteComment(p *model.Profile, g access.Grant, commentID string) error {
	if !g.CanModerateComments() {
		return g.Deny("delete comments")
	}

	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return model.NewCommentNotFoundError()
}
