package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"newsroot/syndicator/internal/models"
)

// queueRow maps a queue_definitions row.
type queueRow struct {
	ID             int64          `db:"id"`
	Ident          string         `db:"ident"`
	Title          sql.NullString `db:"title"`
	Description    sql.NullString `db:"description"`
	Generator      sql.NullString `db:"generator"`
	TransportIdent string         `db:"transport_ident"`
	Username       string         `db:"username"`
	ExportConfig   sql.NullString `db:"export_config"`
	Copyright      sql.NullString `db:"copyright"`
	Language       sql.NullString `db:"language"`
	ImageIdent     sql.NullString `db:"image_ident"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r *queueRow) toModel() models.QueueDefinition {
	return models.QueueDefinition{
		ID:             r.ID,
		Ident:          r.Ident,
		Title:          r.Title.String,
		Description:    r.Description.String,
		Generator:      r.Generator.String,
		TransportIdent: r.TransportIdent,
		Username:       r.Username,
		ExportConfig:   r.ExportConfig.String,
		Copyright:      r.Copyright.String,
		Language:       r.Language.String,
		ImageIdent:     r.ImageIdent.String,
	}
}

// postRow maps a staging_posts row. Nested post structures are stored
// as JSON columns.
type postRow struct {
	ID                   int64          `db:"id"`
	QueueID              int64          `db:"queue_id"`
	ImporterID           sql.NullString `db:"importer_id"`
	ImporterDesc         sql.NullString `db:"importer_desc"`
	Username             sql.NullString `db:"username"`
	PostTitle            sql.NullString `db:"post_title"`
	PostDesc             sql.NullString `db:"post_desc"`
	PostContents         sql.NullString `db:"post_contents"`
	PostMedia            sql.NullString `db:"post_media"`
	PostITunes           sql.NullString `db:"post_itunes"`
	PostURL              sql.NullString `db:"post_url"`
	PostURLs             sql.NullString `db:"post_urls"`
	PostImgURL           sql.NullString `db:"post_img_url"`
	PostHash             sql.NullString `db:"post_hash"`
	PostComment          sql.NullString `db:"post_comment"`
	PostRights           sql.NullString `db:"post_rights"`
	Contributors         sql.NullString `db:"contributors"`
	Authors              sql.NullString `db:"authors"`
	PostCategories       sql.NullString `db:"post_categories"`
	Enclosures           sql.NullString `db:"enclosures"`
	ImportTimestamp      sql.NullTime   `db:"import_timestamp"`
	PublishTimestamp     sql.NullTime   `db:"publish_timestamp"`
	ExpirationTimestamp  sql.NullTime   `db:"expiration_timestamp"`
	LastUpdatedTimestamp sql.NullTime   `db:"last_updated_timestamp"`
	CreatedAt            time.Time      `db:"created_at"`
}

func toPostRow(post *models.StagingPost) (*postRow, error) {
	row := &postRow{
		QueueID:              post.QueueID,
		ImporterID:           nullString(post.ImporterID),
		ImporterDesc:         nullString(post.ImporterDesc),
		Username:             nullString(post.Username),
		PostURL:              nullString(post.PostURL),
		PostImgURL:           nullString(post.PostImgURL),
		PostHash:             nullString(post.PostHash),
		PostComment:          nullString(post.PostComment),
		PostRights:           nullString(post.PostRights),
		ImportTimestamp:      nullTime(post.ImportTimestamp),
		PublishTimestamp:     nullTime(post.PublishTimestamp),
		ExpirationTimestamp:  nullTime(post.ExpirationTimestamp),
		LastUpdatedTimestamp: nullTime(post.LastUpdatedTimestamp),
	}

	for _, col := range []struct {
		target *sql.NullString
		value  any
		empty  bool
	}{
		{&row.PostTitle, post.PostTitle, post.PostTitle == nil},
		{&row.PostDesc, post.PostDesc, post.PostDesc == nil},
		{&row.PostContents, post.PostContents, len(post.PostContents) == 0},
		{&row.PostMedia, post.PostMedia, post.PostMedia == nil},
		{&row.PostITunes, post.PostITunes, post.PostITunes == nil},
		{&row.PostURLs, post.PostURLs, len(post.PostURLs) == 0},
		{&row.Contributors, post.Contributors, len(post.Contributors) == 0},
		{&row.Authors, post.Authors, len(post.Authors) == 0},
		{&row.PostCategories, post.PostCategories, len(post.PostCategories) == 0},
		{&row.Enclosures, post.Enclosures, len(post.Enclosures) == 0},
	} {
		if col.empty {
			continue
		}
		data, err := json.Marshal(col.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode staging post column: %w", err)
		}
		*col.target = nullString(string(data))
	}

	return row, nil
}

func (r *postRow) toModel() (models.StagingPost, error) {
	post := models.StagingPost{
		ID:                   r.ID,
		QueueID:              r.QueueID,
		ImporterID:           r.ImporterID.String,
		ImporterDesc:         r.ImporterDesc.String,
		Username:             r.Username.String,
		PostURL:              r.PostURL.String,
		PostImgURL:           r.PostImgURL.String,
		PostHash:             r.PostHash.String,
		PostComment:          r.PostComment.String,
		PostRights:           r.PostRights.String,
		ImportTimestamp:      timePtr(r.ImportTimestamp),
		PublishTimestamp:     timePtr(r.PublishTimestamp),
		ExpirationTimestamp:  timePtr(r.ExpirationTimestamp),
		LastUpdatedTimestamp: timePtr(r.LastUpdatedTimestamp),
		CreatedAt:            r.CreatedAt,
	}

	for _, col := range []struct {
		source sql.NullString
		target any
	}{
		{r.PostTitle, &post.PostTitle},
		{r.PostDesc, &post.PostDesc},
		{r.PostContents, &post.PostContents},
		{r.PostMedia, &post.PostMedia},
		{r.PostITunes, &post.PostITunes},
		{r.PostURLs, &post.PostURLs},
		{r.Contributors, &post.Contributors},
		{r.Authors, &post.Authors},
		{r.PostCategories, &post.PostCategories},
		{r.Enclosures, &post.Enclosures},
	} {
		if !col.source.Valid || col.source.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.source.String), col.target); err != nil {
			return models.StagingPost{}, fmt.Errorf("failed to decode staging post column: %w", err)
		}
	}

	return post, nil
}

func toPosts(rows []postRow) ([]models.StagingPost, error) {
	posts := make([]models.StagingPost, 0, len(rows))
	for i := range rows {
		post, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	out := t.Time
	return &out
}
