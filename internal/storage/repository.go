// Package storage persists queue definitions, staging posts, and
// rendered feed documents in sqlite. Repository satisfies the
// dispatcher's QueueResolver and RenderedFeedStore collaborator
// contracts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsroot/syndicator/internal/atom"
	"newsroot/syndicator/internal/database"
	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/rss"
	"newsroot/syndicator/internal/wire"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Repository provides sqlite-backed access to the syndicator's data.
type Repository struct {
	db     *database.DB
	writer *wire.Writer
}

// NewRepository creates a repository on an open database connection.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db, writer: wire.NewWriter()}
}

// InsertQueue stores a queue definition and assigns its ID.
func (r *Repository) InsertQueue(ctx context.Context, queue *models.QueueDefinition) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO queue_definitions
			(ident, title, description, generator, transport_ident, username,
			 export_config, copyright, language, image_ident)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		queue.Ident, queue.Title, queue.Description, queue.Generator,
		queue.TransportIdent, queue.Username, queue.ExportConfig,
		queue.Copyright, queue.Language, queue.ImageIdent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert queue %q: %w", queue.Ident, err)
	}
	queue.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read queue id: %w", err)
	}
	return nil
}

// ListQueues returns all queue definitions ordered by id.
func (r *Repository) ListQueues(ctx context.Context) ([]models.QueueDefinition, error) {
	var rows []queueRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM queue_definitions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list queues: %w", err)
	}
	queues := make([]models.QueueDefinition, 0, len(rows))
	for i := range rows {
		queues = append(queues, rows[i].toModel())
	}
	return queues, nil
}

// ResolveQueue looks up a user's queue definition by id. Returns
// (nil, nil) when no such queue exists; preview treats that as a
// skippable group, not an error.
func (r *Repository) ResolveQueue(ctx context.Context, username string, queueID int64) (*models.QueueDefinition, error) {
	var row queueRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM queue_definitions WHERE id = ? AND username = ?
	`, queueID, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve queue %d: %w", queueID, err)
	}
	queue := row.toModel()
	return &queue, nil
}

// InsertPost stores a staging post and assigns its ID.
func (r *Repository) InsertPost(ctx context.Context, post *models.StagingPost) error {
	row, err := toPostRow(post)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO staging_posts
			(queue_id, importer_id, importer_desc, username,
			 post_title, post_desc, post_contents, post_media, post_itunes,
			 post_url, post_urls, post_img_url, post_hash, post_comment, post_rights,
			 contributors, authors, post_categories, enclosures,
			 import_timestamp, publish_timestamp, expiration_timestamp, last_updated_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.QueueID, row.ImporterID, row.ImporterDesc, row.Username,
		row.PostTitle, row.PostDesc, row.PostContents, row.PostMedia, row.PostITunes,
		row.PostURL, row.PostURLs, row.PostImgURL, row.PostHash, row.PostComment, row.PostRights,
		row.Contributors, row.Authors, row.PostCategories, row.Enclosures,
		row.ImportTimestamp, row.PublishTimestamp, row.ExpirationTimestamp, row.LastUpdatedTimestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert staging post: %w", err)
	}
	post.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read staging post id: %w", err)
	}
	return nil
}

// ListPostsForQueue returns a queue's staging posts in insertion order.
func (r *Repository) ListPostsForQueue(ctx context.Context, queueID int64) ([]models.StagingPost, error) {
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM staging_posts WHERE queue_id = ? ORDER BY id ASC
	`, queueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for queue %d: %w", queueID, err)
	}
	return toPosts(rows)
}

// FetchPosts retrieves staging posts for the API, paginated by time or
// by an opaque (created_at, id) cursor.
func (r *Repository) FetchPosts(ctx context.Context, limit int, since *time.Time, cursorTimestamp *time.Time, cursorID *int64) ([]models.StagingPost, error) {
	var rows []postRow
	var query string
	var args []any

	// Ordering must stay consistent for cursor pagination to work.
	const baseQuery = `SELECT * FROM staging_posts `
	const orderBy = ` ORDER BY created_at ASC, id ASC LIMIT ?`

	switch {
	case cursorTimestamp != nil && cursorID != nil:
		query = baseQuery + `WHERE (created_at > ?) OR (created_at = ? AND id > ?)` + orderBy
		args = append(args, cursorTimestamp.UTC(), cursorTimestamp.UTC(), *cursorID, limit)
	case since != nil:
		query = baseQuery + `WHERE created_at > ?` + orderBy
		args = append(args, since.UTC(), limit)
	default:
		return nil, fmt.Errorf("either 'since' or cursor parameters must be provided")
	}

	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.StagingPost{}, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return toPosts(rows)
}

// PutRSSChannel renders a channel document and stores it at the
// transport ident.
func (r *Repository) PutRSSChannel(ctx context.Context, transportIdent string, channel *rss.Channel) error {
	body, err := r.writer.ChannelXML(channel)
	if err != nil {
		return err
	}
	return r.putRenderedFeed(ctx, transportIdent, "RSS", body)
}

// PutAtomFeed renders a feed document and stores it at the transport
// ident.
func (r *Repository) PutAtomFeed(ctx context.Context, transportIdent string, feed *atom.Feed) error {
	body, err := r.writer.FeedXML(feed)
	if err != nil {
		return err
	}
	return r.putRenderedFeed(ctx, transportIdent, "ATOM", body)
}

func (r *Repository) putRenderedFeed(ctx context.Context, transportIdent, format, body string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rendered_feeds (transport_ident, format, body, published_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (transport_ident, format) DO UPDATE
		SET body = excluded.body, published_at = excluded.published_at
	`, transportIdent, format, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store rendered %s feed for %q: %w", format, transportIdent, err)
	}
	return nil
}

// GetRenderedFeed returns the stored wire document at a transport
// ident, or ErrNotFound.
func (r *Repository) GetRenderedFeed(ctx context.Context, transportIdent, format string) (string, error) {
	var body string
	err := r.db.GetContext(ctx, &body, `
		SELECT body FROM rendered_feeds WHERE transport_ident = ? AND format = ?
	`, transportIdent, format)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load rendered %s feed for %q: %w", format, transportIdent, err)
	}
	return body, nil
}
