package atom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/models"
)

func testOpts() config.Publisher {
	return config.Publisher{
		ChannelImageHeight:      144,
		ChannelImageWidth:       144,
		ChannelLinkTemplate:     "https://feeds.example.com/queue/%s",
		ChannelURITemplate:      "https://feeds.example.com/feed/%s",
		ChannelImageURLTemplate: "https://feeds.example.com/img/%s",
		RSSFeedType:             "rss_2.0",
		AtomFeedType:            "atom_1.0",
		ChannelTTL:              10,
		DefaultGeneratorValue:   "syndicator",
		DefaultGeneratorURL:     "https://feeds.example.com",
		DefaultGeneratorVersion: "1.0",
	}
}

func testQueue() *models.QueueDefinition {
	return &models.QueueDefinition{
		ID:             1,
		Ident:          "tech-news",
		Title:          "Tech News",
		Description:    "All the tech news",
		TransportIdent: "abc123",
		Username:       "me",
		Language:       "en-US",
		Copyright:      "© Example",
	}
}

func TestBuildFeed_Validation(t *testing.T) {
	b := NewFeedBuilder(testOpts())
	now := time.Now()

	_, err := b.BuildFeed(nil, nil, now)
	assert.Error(t, err)

	queue := testQueue()
	queue.TransportIdent = ""
	_, err = b.BuildFeed(queue, nil, now)
	assert.Error(t, err)
}

func TestBuildFeed_RequiredProperties(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	feed, err := b.BuildFeed(testQueue(), nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "atom_1.0", feed.FeedType)
	assert.Equal(t, "Tech News", feed.Title)
	assert.Equal(t, "https://feeds.example.com/feed/abc123", feed.ID)
	assert.Equal(t, "en-US", feed.Language)
	assert.Equal(t, "© Example", feed.Rights)

	require.Len(t, feed.OtherLinks, 1)
	assert.Equal(t, "self", feed.OtherLinks[0].Rel)
	assert.Equal(t, "https://feeds.example.com/feed/abc123", feed.OtherLinks[0].Href)
}

func TestBuildFeed_SubtitleTyping(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	queue := testQueue()
	feed, err := b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, feed.Subtitle)
	assert.Equal(t, "html", feed.Subtitle.Type)
	assert.Equal(t, "All the tech news", feed.Subtitle.Value)

	// Without a description, the subtitle degrades to the plain ident
	queue.Description = ""
	feed, err = b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, feed.Subtitle)
	assert.Equal(t, "text", feed.Subtitle.Type)
	assert.Equal(t, "tech-news", feed.Subtitle.Value)
}

func TestBuildFeed_Generator(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	queue := testQueue()
	feed, err := b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, feed.Generator)
	assert.Equal(t, "syndicator", feed.Generator.Value)
	assert.Equal(t, "https://feeds.example.com", feed.Generator.URL)
	assert.Equal(t, "1.0", feed.Generator.Version)

	// A queue-supplied generator carries only its value
	queue.Generator = "custom-gen 2.1"
	feed, err = b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, feed.Generator)
	assert.Equal(t, "custom-gen 2.1", feed.Generator.Value)
	assert.Empty(t, feed.Generator.URL)
	assert.Empty(t, feed.Generator.Version)
}

func TestBuildFeed_LogoAndIcon(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	queue := testQueue()
	feed, err := b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, feed.Logo)
	assert.Empty(t, feed.Icon)

	queue.ImageIdent = "img-42"
	feed, err = b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "https://feeds.example.com/img/img-42", feed.Logo)
	assert.Equal(t, "https://feeds.example.com/img/img-42", feed.Icon)
}

func TestBuildFeed_Updated(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	posts := []models.StagingPost{
		{LastUpdatedTimestamp: &older},
		{LastUpdatedTimestamp: &newer},
	}

	feed, err := b.BuildFeed(testQueue(), posts, time.Now())
	require.NoError(t, err)
	require.NotNil(t, feed.Updated)
	assert.Equal(t, newer, *feed.Updated)

	feed, err = b.BuildFeed(testQueue(), nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, feed.Updated)
}

func TestBuildFeed_EntriesInOrderWithSource(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	posts := []models.StagingPost{
		{PostTitle: &models.ContentObject{Value: "first"}},
		{PostTitle: &models.ContentObject{Value: "second"}},
	}

	feed, err := b.BuildFeed(testQueue(), posts, time.Now())
	require.NoError(t, err)
	require.Len(t, feed.Entries, 2)
	assert.Equal(t, "first", feed.Entries[0].Title.Value)
	assert.Equal(t, "second", feed.Entries[1].Title.Value)

	// Every entry points back at the enclosing feed
	for i := range feed.Entries {
		assert.Same(t, feed, feed.Entries[i].Source)
	}
}

func TestBuildFeed_NoPostsYieldsNilEntries(t *testing.T) {
	b := NewFeedBuilder(testOpts())

	feed, err := b.BuildFeed(testQueue(), []models.StagingPost{}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, feed.Entries)
}

func TestBuildFeed_ConfigAuthorsAndCategories(t *testing.T) {
	b := NewFeedBuilder(testOpts())
	queue := testQueue()

	queue.ExportConfig = `{"atomConfig":{
		"authorName":"Jane Doe",
		"authorEmail":"jane@example.com",
		"categoryTerm":"tech",
		"categoryLabel":"Technology",
		"xmlBase":"https://example.com/"
	}}`
	feed, err := b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)

	require.Len(t, feed.Authors, 1)
	assert.Equal(t, "Jane Doe", feed.Authors[0].Name)
	assert.Equal(t, "jane@example.com", feed.Authors[0].Email)
	assert.Nil(t, feed.Contributors)
	require.Len(t, feed.Categories, 1)
	assert.Equal(t, "tech", feed.Categories[0].Term)
	assert.Equal(t, "Technology", feed.Categories[0].Label)
	assert.Equal(t, "https://example.com/", feed.XMLBase)

	// No author without a name, no category without a term
	queue.ExportConfig = `{"atomConfig":{"authorEmail":"jane@example.com","categoryLabel":"Technology"}}`
	feed, err = b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, feed.Authors)
	assert.Nil(t, feed.Categories)
}

func TestBuildFeed_Deterministic(t *testing.T) {
	b := NewFeedBuilder(testOpts())
	queue := testQueue()

	updated := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	posts := []models.StagingPost{
		{PostTitle: &models.ContentObject{Value: "first"}, LastUpdatedTimestamp: &updated},
		{PostURL: "https://example.com/2"},
	}
	pubDate := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	one, err := b.BuildFeed(queue, posts, pubDate)
	require.NoError(t, err)
	two, err := b.BuildFeed(queue, posts, pubDate)
	require.NoError(t, err)
	assert.Equal(t, one, two)
}

func TestBuildFeed_MalformedExportConfigIgnored(t *testing.T) {
	b := NewFeedBuilder(testOpts())
	queue := testQueue()
	queue.ExportConfig = `{{{not json`

	feed, err := b.BuildFeed(queue, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, feed.Authors)
	assert.Empty(t, feed.XMLBase)
}
