package models

import "time"

// ContentObject is a typed block of post text. Type is a syndication
// content type tag ("text" or "html").
type ContentObject struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// PostPerson identifies an author or contributor of a post.
type PostPerson struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// PostURL is a supplementary link carried by a post.
type PostURL struct {
	Title    string `json:"title,omitempty"`
	Type     string `json:"type,omitempty"`
	Href     string `json:"href,omitempty"`
	Hreflang string `json:"hreflang,omitempty"`
	Rel      string `json:"rel,omitempty"`
}

// PostEnclosure is an attached media resource (audio, video, image).
// Length is the byte length when known.
type PostEnclosure struct {
	URL    string `json:"url,omitempty"`
	Type   string `json:"type,omitempty"`
	Length *int64 `json:"length,omitempty"`
}

// StagingPost is one content item eligible for inclusion in a rendered
// feed. Produced by the upstream ingestion pipeline; immutable once
// handed to the publishing core.
type StagingPost struct {
	ID           int64  `json:"id"`
	ImporterID   string `json:"importerId,omitempty"`
	QueueID      int64  `json:"queueId"`
	ImporterDesc string `json:"importerDesc,omitempty"`
	Username     string `json:"username,omitempty"`

	PostTitle    *ContentObject  `json:"postTitle,omitempty"`
	PostDesc     *ContentObject  `json:"postDesc,omitempty"`
	PostContents []ContentObject `json:"postContents,omitempty"`
	PostMedia    *PostMedia      `json:"postMedia,omitempty"`
	PostITunes   *PostITunes     `json:"postITunes,omitempty"`

	PostURL        string          `json:"postUrl,omitempty"`
	PostURLs       []PostURL       `json:"postUrls,omitempty"`
	PostImgURL     string          `json:"postImgUrl,omitempty"`
	PostHash       string          `json:"postHash,omitempty"`
	PostComment    string          `json:"postComment,omitempty"`
	PostRights     string          `json:"postRights,omitempty"`
	Contributors   []PostPerson    `json:"contributors,omitempty"`
	Authors        []PostPerson    `json:"authors,omitempty"`
	PostCategories []string        `json:"postCategories,omitempty"`
	Enclosures     []PostEnclosure `json:"enclosures,omitempty"`

	ImportTimestamp      *time.Time `json:"importTimestamp,omitempty"`
	PublishTimestamp     *time.Time `json:"publishTimestamp,omitempty"`
	ExpirationTimestamp  *time.Time `json:"expirationTimestamp,omitempty"`
	LastUpdatedTimestamp *time.Time `json:"lastUpdatedTimestamp,omitempty"`

	// CreatedAt is the record creation time, set by storage; the API
	// paginates on it.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// LatestUpdate returns the maximum last-updated timestamp across posts
// that have one set, or nil when none do.
func LatestUpdate(posts []StagingPost) *time.Time {
	var latest *time.Time
	for i := range posts {
		ts := posts[i].LastUpdatedTimestamp
		if ts == nil {
			continue
		}
		if latest == nil || ts.After(*latest) {
			latest = ts
		}
	}
	return latest
}
