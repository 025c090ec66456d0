package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestProfile() *model.Profile {
	return &model.Profile{
		ID:        "prof-1",
		Slug:      "jane-doe",
		Name:      "Jane Doe",
		CreatedBy: "owner@example.com",
	}
}

func grantFor(p *model.Profile, identity string) access.Grant {
	return access.Evaluate(p, identity)
}

func TestInvite(t *testing.T) {
	p := newTestProfile()

	c, err := Invite(p, grantFor(p, "owner@example.com"), "friend@example.com", model.RoleViewer, testNow)
	require.NoError(t, err)

	assert.Equal(t, "friend@example.com", c.Email)
	assert.Equal(t, model.RoleViewer, c.Role)
	assert.Equal(t, "owner@example.com", c.InvitedBy)
	assert.Equal(t, testNow, c.InvitedAt)
	assert.Nil(t, c.AcceptedAt)
	assert.Len(t, p.Contributors, 1)
}

func TestInviteDefaultsToEditor(t *testing.T) {
	p := newTestProfile()

	c, err := Invite(p, grantFor(p, "owner@example.com"), "friend@example.com", "", testNow)
	require.NoError(t, err)

	assert.Equal(t, model.RoleEditor, c.Role)
}

func TestInviteRejectsNonOwner(t *testing.T) {
	p := newTestProfile()
	accepted := testNow
	p.Contributors = []model.Contributor{
		{Email: "editor@example.com", Role: model.RoleEditor, AcceptedAt: &accepted},
	}

	_, err := Invite(p, grantFor(p, "editor@example.com"), "friend@example.com", model.RoleEditor, testNow)
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)

	_, err = Invite(p, grantFor(p, ""), "friend@example.com", model.RoleEditor, testNow)
	assertProfileErrorCode(t, err, model.ErrCodeUnauthorized)
}

func TestInviteRejectsOwnerEmail(t *testing.T) {
	p := newTestProfile()

	_, err := Invite(p, grantFor(p, "owner@example.com"), "owner@example.com", model.RoleEditor, testNow)
	assertProfileErrorCode(t, err, model.ErrCodeSelfInvite)
}

func TestInviteRejectsDuplicate(t *testing.T) {
	p := newTestProfile()
	g := grantFor(p, "owner@example.com")

	_, err := Invite(p, g, "friend@example.com", model.RoleEditor, testNow)
	require.NoError(t, err)

	// Re-inviting is rejected whether or not the first invite was accepted.
	_, err = Invite(p, g, "friend@example.com", model.RoleViewer, testNow)
	assertProfileErrorCode(t, err, model.ErrCodeDuplicateContributor)
	assert.Len(t, p.Contributors, 1)
}

func TestInviteRejectsUnknownRole(t *testing.T) {
	p := newTestProfile()

	_, err := Invite(p, grantFor(p, "owner@example.com"), "friend@example.com", "admin", testNow)
	assertProfileErrorCode(t, err, model.ErrCodeValidation)
}

func TestAccept(t *testing.T) {
	p := newTestProfile()
	_, err := Invite(p, grantFor(p, "owner@example.com"), "friend@example.com", model.RoleEditor, testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	c, err := Accept(p, "friend@example.com", later)
	require.NoError(t, err)

	require.NotNil(t, c.AcceptedAt)
	assert.Equal(t, later, *c.AcceptedAt)
	assert.Equal(t, access.Editor, access.Evaluate(p, "friend@example.com").Level)
}

func TestAcceptIsIdempotent(t *testing.T) {
	p := newTestProfile()
	_, err := Invite(p, grantFor(p, "owner@example.com"), "friend@example.com", model.RoleEditor, testNow)
	require.NoError(t, err)

	first := testNow.Add(time.Hour)
	_, err = Accept(p, "friend@example.com", first)
	require.NoError(t, err)

	// Following a stale invitation link must not reset the timestamp.
	c, err := Accept(p, "friend@example.com", first.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, *c.AcceptedAt)
}

func TestAcceptWithoutInvitation(t *testing.T) {
	p := newTestProfile()

	_, err := Accept(p, "stranger@example.com", testNow)
	assertProfileErrorCode(t, err, model.ErrCodeInvitationNotFound)

	_, err = Accept(p, "", testNow)
	assertProfileErrorCode(t, err, model.ErrCodeUnauthorized)
}

func TestRemove(t *testing.T) {
	p := newTestProfile()
	g := grantFor(p, "owner@example.com")
	_, err := Invite(p, g, "friend@example.com", model.RoleEditor, testNow)
	require.NoError(t, err)
	_, err = Accept(p, "friend@example.com", testNow)
	require.NoError(t, err)

	require.NoError(t, Remove(p, g, "friend@example.com"))
	assert.Empty(t, p.Contributors)
	assert.Equal(t, access.None, access.Evaluate(p, "friend@example.com").Level)
}

func TestRemoveRequiresOwner(t *testing.T) {
	p := newTestProfile()
	accepted := testNow
	p.Contributors = []model.Contributor{
		{Email: "editor@example.com", Role: model.RoleEditor, AcceptedAt: &accepted},
	}

	err := Remove(p, grantFor(p, "editor@example.com"), "editor@example.com")
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)
}

func TestRemoveUnknownContributor(t *testing.T) {
	p := newTestProfile()

	err := Remove(p, grantFor(p, "owner@example.com"), "nobody@example.com")
	assertProfileErrorCode(t, err, model.ErrCodeInvitationNotFound)
}

func assertProfileErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var profileErr *model.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, code, profileErr.Code)
}
