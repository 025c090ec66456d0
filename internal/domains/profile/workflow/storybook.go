package workflow

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"memorial-backend/internal/domains/profile/access"
	"memorial-backend/internal/domains/profile/model"
)

// storybookThemes is the fixed, ordered list of page themes. Approved
// stories are assigned round-robin by submission index; themes that end
// up empty are dropped from the book.
var storybookThemes = []string{
	"Childhood Memories",
	"Family Moments",
	"Friendship & Laughter",
	"Life Achievements",
	"Special Occasions",
	"Words of Wisdom",
}

// minApprovedStories is the generation precondition, re-checked on every
// call rather than cached.
const minApprovedStories = 2

// GenerateStorybook assembles approved stories into an ordered page
// sequence and replaces the profile's storybook wholesale. Owner or
// accepted editor only.
func GenerateStorybook(p *model.Profile, g access.Grant, now time.Time) (*model.Storybook, error) {
	if !g.CanGenerateStorybook() {
		return nil, g.Deny("generate a storybook")
	}

	approved := p.ApprovedStories()
	if len(approved) < minApprovedStories {
		return nil, model.NewInsufficientStoriesError()
	}

	book := &model.Storybook{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("%s's Storybook", p.Name),
		Pages:       buildPages(p, approved),
		CreatedAt:   now,
		GeneratedBy: g.Identity,
	}

	p.GeneratedStorybook = book
	return book, nil
}

func buildPages(p *model.Profile, stories []model.Story) []model.StorybookPage {
	pages := []model.StorybookPage{{
		ID:    "intro",
		Title: fmt.Sprintf("Remembering %s", p.Name),
		Content: fmt.Sprintf(
			"This is a collection of stories and memories about %s, lovingly shared by family and friends. "+
				"Each story captures a unique moment, a special memory, or a glimpse into the beautiful life they lived.",
			p.Name),
		Photo: p.Photo,
		Order: 0,
	}}

	for i, group := range groupStoriesByTheme(stories) {
		pages = append(pages, model.StorybookPage{
			ID:      fmt.Sprintf("page-%d", i+1),
			Title:   group.theme,
			Content: group.content,
			Author:  strings.Join(group.authors, ", "),
			Order:   i + 1,
		})
	}

	closing := model.StorybookPage{
		ID:    "conclusion",
		Title: "A Life Well Lived",
		Content: fmt.Sprintf(
			"Though %s may no longer be with us in person, their memory lives on through these stories and "+
				"the love they shared with everyone around them. Their legacy continues to inspire and comfort "+
				"those who knew them.",
			p.Name),
		Order: len(pages),
	}
	if len(p.LifePhotos) > 0 {
		closing.Photo = p.LifePhotos[rand.Intn(len(p.LifePhotos))].Filename
	}

	return append(pages, closing)
}

type themeGroup struct {
	theme   string
	content string
	authors []string
}

// groupStoriesByTheme distributes stories across the fixed theme list by
// index modulo theme count and drops themes with no content.
func groupStoriesByTheme(stories []model.Story) []themeGroup {
	groups := make([]themeGroup, len(storybookThemes))
	for i, theme := range storybookThemes {
		groups[i].theme = theme
	}

	for i, story := range stories {
		g := &groups[i%len(storybookThemes)]
		if g.content != "" {
			g.content += "\n\n"
		}
		g.content += cleanStoryContent(story.Content)
		g.authors = append(g.authors, story.Author)
	}

	out := make([]themeGroup, 0, len(groups))
	for _, g := range groups {
		if strings.TrimSpace(g.content) != "" {
			out = append(out, g)
		}
	}
	return out
}

var (
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	signaturePattern = regexp.MustCompile(`\s*-\s*[A-Za-z ]+\s*$`)
	spaceRuns        = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.!?])`)
	sentenceStart    = regexp.MustCompile(`([.!?])\s*([a-z])`)
)

// cleanStoryContent normalizes raw submissions before they go into a
// page: strips email addresses and trailing signatures, fixes spacing
// around punctuation and capitalizes sentence starts.
func cleanStoryContent(content string) string {
	cleaned := emailPattern.ReplaceAllString(content, "")
	cleaned = signaturePattern.ReplaceAllString(cleaned, "")

	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = spaceBeforePunct.ReplaceAllString(cleaned, "$1")
	cleaned = sentenceStart.ReplaceAllStringFunc(cleaned, func(m string) string {
		return strings.ToUpper(m[:1]) + m[1:len(m)-1] + strings.ToUpper(m[len(m)-1:])
	})

	cleaned = strings.TrimSpace(cleaned)
	if cleaned != "" {
		cleaned = strings.ToUpper(cleaned[:1]) + cleaned[1:]
	}
	return cleaned
}
