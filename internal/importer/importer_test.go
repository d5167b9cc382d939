package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroot/syndicator/internal/database"
	"newsroot/syndicator/internal/storage"
)

func testRepo(t *testing.T) *storage.Repository {
	t.Helper()

	db, err := database.NewDB(database.NewConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return storage.NewRepository(db)
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportSeed(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seed := `{
		"queues": [
			{
				"ident": "tech-news",
				"title": "Tech News",
				"transportIdent": "abc123",
				"username": "me",
				"posts": [
					{"postTitle": {"type": "text", "value": "First"}, "postUrl": "https://example.com/1"},
					{"postTitle": {"type": "text", "value": "Second"}, "username": "other"}
				]
			},
			{
				"ident": "sports",
				"transportIdent": "def456",
				"username": "me"
			}
		]
	}`

	err := NewImporter(repo).ImportSeed(ctx, writeSeed(t, seed))
	require.NoError(t, err)

	queues, err := repo.ListQueues(ctx)
	require.NoError(t, err)
	require.Len(t, queues, 2)

	posts, err := repo.ListPostsForQueue(ctx, queues[0].ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].PostTitle.Value)
	assert.Equal(t, "https://example.com/1", posts[0].PostURL)

	// Posts inherit the queue owner unless they name their own
	assert.Equal(t, "me", posts[0].Username)
	assert.Equal(t, "other", posts[1].Username)

	posts, err = repo.ListPostsForQueue(ctx, queues[1].ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestImportSeed_SkipsQueuesWithoutTransportIdent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seed := `{
		"queues": [
			{"ident": "no-transport", "username": "me"},
			{"ident": "ok", "transportIdent": "abc123", "username": "me"}
		]
	}`

	err := NewImporter(repo).ImportSeed(ctx, writeSeed(t, seed))
	require.NoError(t, err)

	queues, err := repo.ListQueues(ctx)
	require.NoError(t, err)
	require.Len(t, queues, 1)
	assert.Equal(t, "ok", queues[0].Ident)
}

func TestImportSeed_Errors(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	imp := NewImporter(repo)

	err := imp.ImportSeed(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	err = imp.ImportSeed(ctx, writeSeed(t, "{not json"))
	assert.Error(t, err)
}
