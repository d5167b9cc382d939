package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"

	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/server/pagination"
	"newsroot/syndicator/internal/storage"
)

const defaultLimit = 100
const maxLimit = 1000
const iso8601Format = time.RFC3339

// Response structure for the staging posts endpoint
type Response struct {
	Posts      []models.StagingPost `json:"posts"`
	NextCursor *string              `json:"next_cursor,omitempty"`
}

// StagingPostsHandler holds dependencies for the API handler.
type StagingPostsHandler struct {
	repo *storage.Repository
}

// NewStagingPostsHandler creates a new handler instance.
func NewStagingPostsHandler(repo *storage.Repository) *StagingPostsHandler {
	return &StagingPostsHandler{repo: repo}
}

// GetStagingPosts handles requests to list staging posts.
func (h *StagingPostsHandler) GetStagingPosts(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	log.Debug().Msg("Processing staging posts request")

	ctx := r.Context()

	query := r.URL.Query()
	limitStr := query.Get("limit")
	sinceStr := query.Get("since")
	cursorStr := query.Get("cursor")

	limit := defaultLimit
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 || parsedLimit > maxLimit {
			log.Warn().Err(err).Str("limit", limitStr).Msg("Invalid 'limit' parameter value")
			http.Error(w, fmt.Sprintf("Invalid 'limit' parameter: must be between 1 and %d", maxLimit), http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	var since *time.Time
	var cursorTimestamp *time.Time
	var cursorID *int64

	if cursorStr != "" {
		ts, id, err := pagination.DecodeCursor(cursorStr)
		if err != nil {
			log.Warn().Err(err).Str("cursor", cursorStr).Msg("Invalid 'cursor' parameter")
			http.Error(w, "Invalid 'cursor' parameter", http.StatusBadRequest)
			return
		}
		cursorTimestamp = &ts
		cursorID = &id
	} else if sinceStr != "" {
		parsedSince, err := time.Parse(iso8601Format, sinceStr)
		if err != nil {
			log.Warn().Err(err).Str("since", sinceStr).Msg("Invalid 'since' parameter format")
			http.Error(w, "Invalid 'since' parameter: use RFC3339 format (e.g., 2025-03-28T15:00:00Z)", http.StatusBadRequest)
			return
		}
		utcSince := parsedSince.UTC()
		since = &utcSince
	} else {
		log.Warn().Msg("Missing required parameter: 'since' or 'cursor'")
		http.Error(w, "Missing required parameter: 'since' or 'cursor'", http.StatusBadRequest)
		return
	}

	posts, err := h.repo.FetchPosts(ctx, limit+1, since, cursorTimestamp, cursorID) // Fetch one extra
	if err != nil {
		log.Error().Err(err).Str("cursor", cursorStr).Msg("Error fetching staging posts from repository")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var nextCursorStr *string
	hasNextPage := len(posts) > limit
	actualPosts := posts
	if hasNextPage {
		actualPosts = posts[:limit]
		if len(actualPosts) > 0 {
			lastPost := actualPosts[len(actualPosts)-1]
			cursor := pagination.EncodeCursor(lastPost.CreatedAt.UTC(), lastPost.ID)
			nextCursorStr = &cursor
		}
	}

	response := Response{
		Posts:      actualPosts,
		NextCursor: nextCursorStr,
	}

	jsonBytes, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling JSON response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Error().Err(err).Msg("Error writing JSON response body to client")
	}
	log.Debug().Int("bytes_written", len(jsonBytes)).Msg("Response completed")
}
