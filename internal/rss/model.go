// Package rss builds RSS 2.0 channel documents from a queue definition
// and its staging posts.
package rss

import (
	"time"

	"newsroot/syndicator/internal/models"
)

// Channel is the in-memory RSS 2.0 channel document. Built fresh on
// every invocation and not mutated after construction.
type Channel struct {
	FeedType    string
	URI         string
	Title       string
	Link        string
	Description string
	TTL         int
	Language    string
	Copyright   string
	Generator   string

	Image *Image

	// Optional properties, populated only from the queue's rssConfig.
	ManagingEditor string
	WebMaster      string
	Docs           string
	Rating         string
	Cloud          *Cloud
	TextInput      *TextInput
	SkipHours      []int
	SkipDays       []string
	Categories     []Category

	LastBuildDate *time.Time
	PubDate       *time.Time

	Items []Item
}

// Image is the channel's image block.
type Image struct {
	URL         string
	Link        string
	Title       string
	Description string
	Width       int
	Height      int
}

// Cloud is the rssCloud notification block.
type Cloud struct {
	Domain            string
	Path              string
	Port              int
	Protocol          string
	RegisterProcedure string
}

// TextInput is the channel's textInput block.
type TextInput struct {
	Title       string
	Description string
	Name        string
	Link        string
}

// Category is a channel- or item-level category.
type Category struct {
	Value  string
	Domain string
}

// Description is an item description with its content type tag.
type Description struct {
	Type  string
	Value string
}

// Content is an item's body content with its content type tag.
type Content struct {
	Type  string
	Value string
}

// Enclosure is an item's attached media resource.
type Enclosure struct {
	URL    string
	Type   string
	Length *int64
}

// GUID is an item's globally unique identifier.
type GUID struct {
	Value     string
	PermaLink bool
}

// Item is one RSS item within a channel.
type Item struct {
	Title       string
	Link        string
	URI         string
	Description *Description

	Author         string
	Categories     []Category
	Comments       string
	Enclosures     []Enclosure
	GUID           *GUID
	PubDate        *time.Time
	ExpirationDate *time.Time
	Content        *Content

	Media  *models.PostMedia
	ITunes *models.PostITunes
}
