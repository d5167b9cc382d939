package atom

import (
	"fmt"
	"strings"
	"time"

	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/exportconfig"
	"newsroot/syndicator/internal/models"
)

// FeedBuilder maps a queue definition plus its staging posts onto an
// ATOM 1.0 feed document.
type FeedBuilder struct {
	opts config.Publisher
}

// NewFeedBuilder creates a feed builder with the given publisher
// options.
func NewFeedBuilder(opts config.Publisher) *FeedBuilder {
	return &FeedBuilder{opts: opts}
}

// BuildFeed builds the feed document for a queue. The posts render one
// entry each, in input order; pubDate is the fallback published
// timestamp for posts without one. Optional feed properties come from
// the queue's atomConfig export-configuration block when one is
// present.
func (b *FeedBuilder) BuildFeed(queue *models.QueueDefinition, posts []models.StagingPost, pubDate time.Time) (*Feed, error) {
	if queue == nil {
		return nil, fmt.Errorf("nil queue definition")
	}
	if queue.TransportIdent == "" {
		return nil, fmt.Errorf("queue %q has no transport ident", queue.Ident)
	}

	feed := &Feed{
		FeedType: b.opts.AtomFeedType,
		OtherLinks: []Link{{
			Rel:  "self",
			Href: b.opts.ChannelURI(queue.TransportIdent),
		}},
	}
	feed.Updated = models.LatestUpdate(posts)

	b.setRequiredProperties(feed, queue)

	if atomConfig := exportconfig.ParseAtom(queue.ExportConfig); atomConfig != nil {
		setOptionalProperties(feed, atomConfig)
	}

	if len(posts) > 0 {
		entries := make([]Entry, 0, len(posts))
		for i := range posts {
			entries = append(entries, toEntry(&posts[i], pubDate))
		}
		feed.Entries = entries
		// Back-link each entry to the enclosing feed.
		for i := range feed.Entries {
			feed.Entries[i].Source = feed
		}
	}

	return feed, nil
}

func (b *FeedBuilder) setRequiredProperties(feed *Feed, queue *models.QueueDefinition) {
	feed.Title = queue.DisplayTitle()
	feed.Subtitle = subtitle(queue)
	feed.ID = b.opts.ChannelURI(queue.TransportIdent)
	feed.Language = queue.Language
	feed.Rights = queue.Copyright
	feed.Generator = b.generator(queue)
	if queue.ImageIdent != "" {
		imageURL := b.opts.ChannelImageURL(queue.ImageIdent)
		feed.Logo = imageURL
		feed.Icon = imageURL
	}
}

// subtitle carries the queue description typed "html" when one is set,
// else the bare ident typed "text".
func subtitle(queue *models.QueueDefinition) *Content {
	if queue.Description != "" {
		return &Content{Type: "html", Value: queue.Description}
	}
	return &Content{Type: "text", Value: queue.Ident}
}

func (b *FeedBuilder) generator(queue *models.QueueDefinition) *Generator {
	if queue.Generator != "" {
		return &Generator{Value: queue.Generator}
	}
	return &Generator{
		Value:   b.opts.DefaultGeneratorValue,
		URL:     b.opts.DefaultGeneratorURL,
		Version: b.opts.DefaultGeneratorVersion,
	}
}

func setOptionalProperties(feed *Feed, opts *exportconfig.AtomOptions) {
	feed.Authors = configPerson(opts.AuthorName, opts.AuthorEmail, opts.AuthorURI)
	feed.Contributors = configPerson(opts.ContributorName, opts.ContributorEmail, opts.ContributorURI)
	feed.Categories = configCategories(opts)
	feed.XMLBase = exportconfig.Str(opts.XMLBase)
}

// configPerson builds a single-person list from export-configuration
// fields; no person is built without a name.
func configPerson(name, email, uri *string) []Person {
	if isBlank(exportconfig.Str(name)) {
		return nil
	}
	return []Person{{
		Name:  exportconfig.Str(name),
		Email: exportconfig.Str(email),
		URI:   exportconfig.Str(uri),
	}}
}

func configCategories(opts *exportconfig.AtomOptions) []Category {
	term := exportconfig.Str(opts.CategoryTerm)
	if isBlank(term) {
		return nil
	}
	return []Category{{
		Term:   term,
		Label:  exportconfig.Str(opts.CategoryLabel),
		Scheme: exportconfig.Str(opts.CategoryScheme),
	}}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
