package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorial-backend/internal/domains/profile/model"
)

func profileWithEditor() *model.Profile {
	p := newTestProfile()
	accepted := testNow
	p.Contributors = []model.Contributor{
		{Email: "editor@example.com", Role: model.RoleEditor, AcceptedAt: &accepted},
		{Email: "viewer@example.com", Role: model.RoleViewer, AcceptedAt: &accepted},
	}
	return p
}

func TestSubmitStoryByOwnerIsAutoApproved(t *testing.T) {
	p := profileWithEditor()

	s, err := SubmitStory(p, grantFor(p, "owner@example.com"), "The Owner", "She taught me to fish.", testNow)
	require.NoError(t, err)

	assert.True(t, s.Approved)
	assert.Equal(t, "owner@example.com", s.AuthorEmail)
}

func TestSubmitStoryByEditorAwaitsApproval(t *testing.T) {
	p := profileWithEditor()

	s, err := SubmitStory(p, grantFor(p, "editor@example.com"), "An Editor", "We hiked every summer.", testNow)
	require.NoError(t, err)

	assert.False(t, s.Approved)
	assert.Equal(t, "editor@example.com", s.AuthorEmail)
}

func TestSubmitStoryRejectsViewerAndAnonymous(t *testing.T) {
	p := profileWithEditor()

	_, err := SubmitStory(p, grantFor(p, "viewer@example.com"), "A Viewer", "content", testNow)
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)

	_, err = SubmitStory(p, grantFor(p, ""), "", "content", testNow)
	assertProfileErrorCode(t, err, model.ErrCodeUnauthorized)
}

func TestSetStoryApprovalIsReversible(t *testing.T) {
	p := profileWithEditor()
	s, err := SubmitStory(p, grantFor(p, "editor@example.com"), "An Editor", "We hiked every summer.", testNow)
	require.NoError(t, err)

	owner := grantFor(p, "owner@example.com")

	approved, err := SetStoryApproval(p, owner, s.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	// Un-approving removes the story from the storybook pool again.
	revoked, err := SetStoryApproval(p, owner, s.ID, false)
	require.NoError(t, err)
	assert.False(t, revoked.Approved)
	assert.Empty(t, p.ApprovedStories())
}

func TestSetStoryApprovalRequiresOwner(t *testing.T) {
	p := profileWithEditor()
	s, err := SubmitStory(p, grantFor(p, "editor@example.com"), "An Editor", "We hiked every summer.", testNow)
	require.NoError(t, err)

	_, err = SetStoryApproval(p, grantFor(p, "editor@example.com"), s.ID, true)
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)
}

func TestSetStoryApprovalNotFound(t *testing.T) {
	p := profileWithEditor()

	_, err := SetStoryApproval(p, grantFor(p, "owner@example.com"), "missing", true)
	assertProfileErrorCode(t, err, model.ErrCodeStoryNotFound)
}

func TestDeleteStory(t *testing.T) {
	p := profileWithEditor()
	s, err := SubmitStory(p, grantFor(p, "owner@example.com"), "The Owner", "She taught me to fish.", testNow)
	require.NoError(t, err)

	require.NoError(t, DeleteStory(p, grantFor(p, "owner@example.com"), s.ID))
	assert.Empty(t, p.Stories)

	err = DeleteStory(p, grantFor(p, "owner@example.com"), s.ID)
	assertProfileErrorCode(t, err, model.ErrCodeStoryNotFound)
}
