package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorial-backend/internal/domains/profile/model"
)

func TestSubmitCommentStartsUnapproved(t *testing.T) {
	p := newTestProfile()

	c := SubmitComment(p, "Old Friend", "She always made everyone laugh.", testNow)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Old Friend", c.Author)
	assert.False(t, c.Approved, "new comments must await moderation")
	assert.Len(t, p.Comments, 1)
}

func TestSubmitCommentAnonymousAuthor(t *testing.T) {
	p := newTestProfile()

	c := SubmitComment(p, "", "Rest in peace.", testNow)

	assert.Equal(t, "Anonymous", c.Author)
}

func TestApproveComment(t *testing.T) {
	p := newTestProfile()
	c := SubmitComment(p, "Old Friend", "A kind soul.", testNow)

	approved, err := ApproveComment(p, grantFor(p, "owner@example.com"), c.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	// Approving again is harmless.
	again, err := ApproveComment(p, grantFor(p, "owner@example.com"), c.ID)
	require.NoError(t, err)
	assert.True(t, again.Approved)
}

func TestApproveCommentRequiresOwner(t *testing.T) {
	p := newTestProfile()
	accepted := testNow
	p.Contributors = []model.Contributor{
		{Email: "editor@example.com", Role: model.RoleEditor, AcceptedAt: &accepted},
	}
	c := SubmitComment(p, "Old Friend", "A kind soul.", testNow)

	_, err := ApproveComment(p, grantFor(p, "editor@example.com"), c.ID)
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)

	_, err = ApproveComment(p, grantFor(p, ""), c.ID)
	assertProfileErrorCode(t, err, model.ErrCodeUnauthorized)
}

func TestApproveCommentNotFound(t *testing.T) {
	p := newTestProfile()

	_, err := ApproveComment(p, grantFor(p, "owner@example.com"), "missing")
	assertProfileErrorCode(t, err, model.ErrCodeCommentNotFound)
}

func TestDeleteComment(t *testing.T) {
	p := newTestProfile()
	c := SubmitComment(p, "Old Friend", "A kind soul.", testNow)

	require.NoError(t, DeleteComment(p, grantFor(p, "owner@example.com"), c.ID))
	assert.Empty(t, p.Comments)

	err := DeleteComment(p, grantFor(p, "owner@example.com"), c.ID)
	assertProfileErrorCode(t, err, model.ErrCodeCommentNotFound)
}
