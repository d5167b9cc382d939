// Package atom builds ATOM 1.0 feed documents from a queue definition
// and its staging posts.
package atom

import (
	"time"

	"newsroot/syndicator/internal/models"
)

// Feed is the in-memory ATOM 1.0 feed document. Built fresh on every
// invocation; entries carry a back-reference to the enclosing feed via
// Source once the entry list is attached.
type Feed struct {
	FeedType string
	ID       string
	Title    string
	Subtitle *Content
	Language string
	Rights   string

	Generator *Generator
	Logo      string
	Icon      string
	XMLBase   string

	OtherLinks []Link

	// Optional properties, populated only from the queue's atomConfig.
	Authors      []Person
	Contributors []Person
	Categories   []Category

	Updated *time.Time

	Entries []Entry
}

// Content is a typed text construct (titles, subtitles, summaries,
// entry bodies).
type Content struct {
	Type  string
	Value string
}

// Generator identifies the software that produced the feed.
type Generator struct {
	Value   string
	URL     string
	Version string
}

// Link is an ATOM link element. Length is the advertised byte length
// for enclosure links.
type Link struct {
	Rel      string
	Href     string
	Title    string
	Type     string
	Hreflang string
	Length   *int64
}

// Person is an ATOM person construct (authors and contributors).
type Person struct {
	Name  string
	Email string
	URI   string
}

// Category is an ATOM category element.
type Category struct {
	Term   string
	Label  string
	Scheme string
}

// Entry is one ATOM entry within a feed. Source points back at the
// enclosing feed for format compliance; it carries no lifecycle
// implication.
type Entry struct {
	ID      string
	Title   *Content
	Updated *time.Time
	Summary *Content

	AlternateLinks []Link
	OtherLinks     []Link
	Authors        []Person
	Contributors   []Person
	Rights         string
	Published      *time.Time
	Categories     []Category
	Contents       []Content

	Media  *models.PostMedia
	ITunes *models.PostITunes

	Source *Feed
}
