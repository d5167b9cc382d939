package atom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroot/syndicator/internal/models"
)

func TestToEntry_Basics(t *testing.T) {
	updated := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	pubDate := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	post := models.StagingPost{
		PostTitle:            &models.ContentObject{Type: "text", Value: "Hello"},
		PostDesc:             &models.ContentObject{Type: "html", Value: "<p>Summary</p>"},
		PostURL:              "https://example.com/posts/1",
		PostRights:           "CC BY-4.0",
		LastUpdatedTimestamp: &updated,
		Authors:              []models.PostPerson{{Name: "Jane Doe", URI: "https://example.com/jane"}},
		Contributors:         []models.PostPerson{{Name: "Helper"}},
		PostCategories:       []string{"tech"},
		PostContents: []models.ContentObject{
			{Type: "html", Value: "<p>One</p>"},
			{Type: "text", Value: "Two"},
		},
	}

	entry := toEntry(&post, pubDate)

	assert.Equal(t, "https://example.com/posts/1", entry.ID)
	require.NotNil(t, entry.Title)
	assert.Equal(t, "Hello", entry.Title.Value)
	require.NotNil(t, entry.Summary)
	assert.Equal(t, "html", entry.Summary.Type)
	require.NotNil(t, entry.Updated)
	assert.Equal(t, updated, *entry.Updated)
	assert.Equal(t, "CC BY-4.0", entry.Rights)

	require.Len(t, entry.AlternateLinks, 1)
	assert.Equal(t, "alternate", entry.AlternateLinks[0].Rel)
	assert.Equal(t, "https://example.com/posts/1", entry.AlternateLinks[0].Href)

	require.Len(t, entry.Authors, 1)
	assert.Equal(t, "Jane Doe", entry.Authors[0].Name)
	require.Len(t, entry.Contributors, 1)

	// Every content block is carried, in order
	require.Len(t, entry.Contents, 2)
	assert.Equal(t, "<p>One</p>", entry.Contents[0].Value)
	assert.Equal(t, "Two", entry.Contents[1].Value)
}

func TestToEntry_EmptyIDPropagates(t *testing.T) {
	entry := toEntry(&models.StagingPost{}, time.Now())
	assert.Empty(t, entry.ID)
	assert.Nil(t, entry.AlternateLinks)
}

func TestToEntry_BlankURLHasNoAlternateLink(t *testing.T) {
	entry := toEntry(&models.StagingPost{PostURL: "   "}, time.Now())
	assert.Nil(t, entry.AlternateLinks)
}

func TestToEntry_OtherLinks(t *testing.T) {
	length := int64(42000)
	post := models.StagingPost{
		PostURL: "https://example.com/posts/1",
		PostURLs: []models.PostURL{
			{Title: "Mirror", Href: "https://mirror.example.com/posts/1", Rel: "related", Hreflang: "en"},
			{Href: "https://example.com/posts/1", Rel: "alternate"}, // already covered
		},
		Enclosures: []models.PostEnclosure{
			{URL: "https://example.com/ep1.mp3", Type: "audio/mpeg", Length: &length},
		},
	}

	entry := toEntry(&post, time.Now())

	// One supplementary link plus one enclosure link; the duplicate
	// alternate is dropped
	require.Len(t, entry.OtherLinks, 2)

	assert.Equal(t, "related", entry.OtherLinks[0].Rel)
	assert.Equal(t, "https://mirror.example.com/posts/1", entry.OtherLinks[0].Href)
	assert.Equal(t, "Mirror", entry.OtherLinks[0].Title)
	assert.Equal(t, "en", entry.OtherLinks[0].Hreflang)

	assert.Equal(t, "enclosure", entry.OtherLinks[1].Rel)
	assert.Equal(t, "https://example.com/ep1.mp3", entry.OtherLinks[1].Href)
	assert.Equal(t, "audio/mpeg", entry.OtherLinks[1].Type)
	require.NotNil(t, entry.OtherLinks[1].Length)
	assert.Equal(t, int64(42000), *entry.OtherLinks[1].Length)
}

func TestToEntry_PublishedFallback(t *testing.T) {
	pubDate := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	entry := toEntry(&models.StagingPost{}, pubDate)
	require.NotNil(t, entry.Published)
	assert.Equal(t, pubDate, *entry.Published)

	own := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	entry = toEntry(&models.StagingPost{PublishTimestamp: &own}, pubDate)
	require.NotNil(t, entry.Published)
	assert.Equal(t, own, *entry.Published)
}

func TestToEntry_Categories(t *testing.T) {
	post := models.StagingPost{PostCategories: []string{"tech", "go"}}

	entry := toEntry(&post, time.Now())
	require.Len(t, entry.Categories, 2)
	assert.Equal(t, "tech", entry.Categories[0].Term)
	assert.Equal(t, "tech", entry.Categories[0].Label)
	assert.Empty(t, entry.Categories[0].Scheme)
}

func TestToEntry_Extensions(t *testing.T) {
	post := models.StagingPost{
		PostMedia:  &models.PostMedia{ContentURL: "https://example.com/clip.mp4"},
		PostITunes: &models.PostITunes{Duration: 1830, Explicit: true},
	}

	entry := toEntry(&post, time.Now())
	require.NotNil(t, entry.Media)
	require.NotNil(t, entry.ITunes)
	assert.Equal(t, int64(1830), entry.ITunes.Duration)
}
