package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroot/syndicator/internal/database"
	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/storage"
)

func testHandler(t *testing.T) (*StagingPostsHandler, *storage.Repository) {
	t.Helper()

	db, err := database.NewDB(database.NewConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := storage.NewRepository(db)
	return NewStagingPostsHandler(repo), repo
}

func seedPosts(t *testing.T, repo *storage.Repository, count int) {
	t.Helper()
	ctx := context.Background()

	queue := &models.QueueDefinition{Ident: "tech-news", TransportIdent: "abc123", Username: "me"}
	require.NoError(t, repo.InsertQueue(ctx, queue))

	for i := 0; i < count; i++ {
		post := &models.StagingPost{
			QueueID:   queue.ID,
			PostTitle: &models.ContentObject{Value: "post"},
		}
		require.NoError(t, repo.InsertPost(ctx, post))
	}
}

func get(h *StagingPostsHandler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.GetStagingPosts(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetStagingPosts_MissingParams(t *testing.T) {
	h, _ := testHandler(t)
	rec := get(h, "/v1/posts")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStagingPosts_InvalidParams(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name   string
		target string
	}{
		{"bad limit", "/v1/posts?since=2000-01-01T00:00:00Z&limit=zero"},
		{"negative limit", "/v1/posts?since=2000-01-01T00:00:00Z&limit=-1"},
		{"limit too large", "/v1/posts?since=2000-01-01T00:00:00Z&limit=99999"},
		{"bad since", "/v1/posts?since=yesterday"},
		{"bad cursor", "/v1/posts?cursor=!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetStagingPosts_Since(t *testing.T) {
	h, repo := testHandler(t)
	seedPosts(t, repo, 3)

	rec := get(h, "/v1/posts?since=2000-01-01T00:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 3)
	assert.Nil(t, resp.NextCursor)
}

func TestGetStagingPosts_Pagination(t *testing.T) {
	h, repo := testHandler(t)
	seedPosts(t, repo, 5)

	rec := get(h, "/v1/posts?since=2000-01-01T00:00:00Z&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 2)
	require.NotNil(t, resp.NextCursor, "more pages remain")
	assert.NotEmpty(t, *resp.NextCursor)
}

func TestGetStagingPosts_NoResults(t *testing.T) {
	h, repo := testHandler(t)
	seedPosts(t, repo, 2)

	rec := get(h, "/v1/posts?since=2999-01-01T00:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Posts)
	assert.Nil(t, resp.NextCursor)
}
