package process

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/database"
	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/publisher"
	"newsroot/syndicator/internal/storage"
)

func testSetup(t *testing.T) (*storage.Repository, *publisher.Publisher) {
	t.Helper()

	db, err := database.NewDB(database.NewConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := storage.NewRepository(db)
	opts := config.Publisher{
		ChannelLinkTemplate:     "https://feeds.example.com/queue/%s",
		ChannelURITemplate:      "https://feeds.example.com/feed/%s",
		ChannelImageURLTemplate: "https://feeds.example.com/img/%s",
		RSSFeedType:             "rss_2.0",
		AtomFeedType:            "atom_1.0",
		ChannelTTL:              10,
		DefaultGeneratorValue:   "syndicator",
	}
	return repo, publisher.New(opts, repo, repo)
}

func TestNewPublishProcessor(t *testing.T) {
	repo, dispatcher := testSetup(t)

	_, err := NewPublishProcessor(nil, dispatcher, 1)
	assert.Error(t, err)

	_, err = NewPublishProcessor(repo, nil, 1)
	assert.Error(t, err)

	p, err := NewPublishProcessor(repo, dispatcher, 0)
	require.NoError(t, err)
	assert.Greater(t, p.WorkerCount, 0)

	p, err = NewPublishProcessor(repo, dispatcher, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.WorkerCount)
}

func TestPublishAll(t *testing.T) {
	repo, dispatcher := testSetup(t)
	ctx := context.Background()

	queues := []*models.QueueDefinition{
		{Ident: "tech-news", TransportIdent: "abc123", Username: "me"},
		{Ident: "sports", TransportIdent: "def456", Username: "me"},
	}
	for _, queue := range queues {
		require.NoError(t, repo.InsertQueue(ctx, queue))
		post := &models.StagingPost{
			QueueID:   queue.ID,
			PostTitle: &models.ContentObject{Value: "post for " + queue.Ident},
		}
		require.NoError(t, repo.InsertPost(ctx, post))
	}

	p, err := NewPublishProcessor(repo, dispatcher, 2)
	require.NoError(t, err)
	require.NoError(t, p.PublishAll(ctx))

	published, failed := p.Stats()
	assert.Equal(t, int64(4), published, "two formats per queue")
	assert.Zero(t, failed)

	for _, queue := range queues {
		for _, format := range []string{"RSS", "ATOM"} {
			body, err := repo.GetRenderedFeed(ctx, queue.TransportIdent, format)
			require.NoError(t, err, "%s feed for %s", format, queue.Ident)
			assert.Contains(t, body, "post for "+queue.Ident)
		}
	}
}

func TestPublishAll_NoQueues(t *testing.T) {
	repo, dispatcher := testSetup(t)

	p, err := NewPublishProcessor(repo, dispatcher, 1)
	require.NoError(t, err)
	require.NoError(t, p.PublishAll(context.Background()))

	published, failed := p.Stats()
	assert.Zero(t, published)
	assert.Zero(t, failed)
}

func TestPublishAll_Canceled(t *testing.T) {
	repo, dispatcher := testSetup(t)
	ctx, cancel := context.WithCancel(context.Background())

	queue := &models.QueueDefinition{Ident: "tech-news", TransportIdent: "abc123", Username: "me"}
	require.NoError(t, repo.InsertQueue(ctx, queue))

	cancel()

	p, err := NewPublishProcessor(repo, dispatcher, 1)
	require.NoError(t, err)
	assert.Error(t, p.PublishAll(ctx))
}
