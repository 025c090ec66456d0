package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorial-backend/internal/domains/profile/model"
)

func profileWithApprovedStories(n int) *model.Profile {
	p := profileWithEditor()
	for i := 0; i < n; i++ {
		p.Stories = append(p.Stories, model.Story{
			ID:       fmt.Sprintf("story-%d", i),
			Content:  fmt.Sprintf("Memory number %d about Jane.", i),
			Author:   fmt.Sprintf("Author %d", i),
			Approved: true,
		})
	}
	return p
}

func TestGenerateStorybook(t *testing.T) {
	p := profileWithApprovedStories(3)
	p.Photo = "portrait.jpg"

	book, err := GenerateStorybook(p, grantFor(p, "owner@example.com"), testNow)
	require.NoError(t, err)
	require.Same(t, book, p.GeneratedStorybook)

	assert.Equal(t, "Jane Doe's Storybook", book.Title)
	assert.Equal(t, "owner@example.com", book.GeneratedBy)
	assert.Equal(t, testNow, book.CreatedAt)

	// Intro, three single-story theme pages, conclusion.
	require.Len(t, book.Pages, 5)

	intro := book.Pages[0]
	assert.Equal(t, "Remembering Jane Doe", intro.Title)
	assert.Equal(t, 0, intro.Order)
	assert.Equal(t, "portrait.jpg", intro.Photo)

	assert.Equal(t, "Childhood Memories", book.Pages[1].Title)
	assert.Equal(t, "Family Moments", book.Pages[2].Title)
	assert.Equal(t, "Friendship & Laughter", book.Pages[3].Title)

	closing := book.Pages[len(book.Pages)-1]
	assert.Equal(t, "A Life Well Lived", closing.Title)

	for i, page := range book.Pages {
		assert.Equal(t, i, page.Order)
	}
}

func TestGenerateStorybookRoundRobin(t *testing.T) {
	// Eight stories across six themes: the first two themes get two
	// stories each, wrapping in submission order.
	p := profileWithApprovedStories(8)

	book, err := GenerateStorybook(p, grantFor(p, "owner@example.com"), testNow)
	require.NoError(t, err)

	require.Len(t, book.Pages, 8) // intro + 6 themes + conclusion

	first := book.Pages[1]
	assert.Equal(t, "Childhood Memories", first.Title)
	assert.Contains(t, first.Content, "Memory number 0")
	assert.Contains(t, first.Content, "Memory number 6")
	assert.Equal(t, "Author 0, Author 6", first.Author)

	second := book.Pages[2]
	assert.Contains(t, second.Content, "Memory number 1")
	assert.Contains(t, second.Content, "Memory number 7")
}

func TestGenerateStorybookSkipsUnapprovedStories(t *testing.T) {
	p := profileWithApprovedStories(2)
	p.Stories = append(p.Stories, model.Story{
		ID: "draft", Content: "Not yet approved.", Author: "Editor", Approved: false,
	})

	book, err := GenerateStorybook(p, grantFor(p, "owner@example.com"), testNow)
	require.NoError(t, err)

	for _, page := range book.Pages {
		assert.NotContains(t, page.Content, "Not yet approved.")
	}
}

func TestGenerateStorybookRequiresTwoApprovedStories(t *testing.T) {
	p := profileWithApprovedStories(1)

	_, err := GenerateStorybook(p, grantFor(p, "owner@example.com"), testNow)
	assertProfileErrorCode(t, err, model.ErrCodeInsufficientStories)
	assert.Nil(t, p.GeneratedStorybook)
}

func TestGenerateStorybookPreconditionRecheckedAfterRevocation(t *testing.T) {
	p := profileWithApprovedStories(2)
	owner := grantFor(p, "owner@example.com")

	_, err := GenerateStorybook(p, owner, testNow)
	require.NoError(t, err)

	// Revoking approval drops the pool below the threshold; the next
	// generation attempt must fail even though one succeeded before.
	_, err = SetStoryApproval(p, owner, "story-0", false)
	require.NoError(t, err)

	_, err = GenerateStorybook(p, owner, testNow)
	assertProfileErrorCode(t, err, model.ErrCodeInsufficientStories)
}

func TestGenerateStorybookReplacesWholesale(t *testing.T) {
	p := profileWithApprovedStories(2)
	owner := grantFor(p, "owner@example.com")

	first, err := GenerateStorybook(p, owner, testNow)
	require.NoError(t, err)

	p.Stories = append(p.Stories, model.Story{
		ID: "story-9", Content: "A late arrival.", Author: "Cousin", Approved: true,
	})
	second, err := GenerateStorybook(p, owner, testNow)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, p.GeneratedStorybook)
}

func TestGenerateStorybookEditorAllowedViewerDenied(t *testing.T) {
	p := profileWithApprovedStories(2)

	_, err := GenerateStorybook(p, grantFor(p, "editor@example.com"), testNow)
	require.NoError(t, err)

	_, err = GenerateStorybook(p, grantFor(p, "viewer@example.com"), testNow)
	assertProfileErrorCode(t, err, model.ErrCodeForbidden)
}

func TestCleanStoryContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"strips email addresses",
			"Reach me at jane.friend@example.com anytime. she was great.",
			"Reach me at anytime. She was great.",
		},
		{
			"strips trailing signature",
			"She was the best neighbor. - John Smith",
			"She was the best neighbor.",
		},
		{
			"normalizes whitespace and capitalization",
			"she   loved gardening .  every spring she planted tulips.",
			"She loved gardening. Every spring she planted tulips.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanStoryContent(tt.in))
		})
	}
}
