package atom

import (
	"time"

	"newsroot/syndicator/internal/models"
)

// toEntry maps a single staging post onto an ATOM entry. Posts without
// a publish timestamp fall back to pubDate for their published field.
//
// ID propagates the post URL as-is; a post without a URL yields an
// empty ID rather than a synthesized one, and the serialization layer
// is trusted to cope.
func toEntry(post *models.StagingPost, pubDate time.Time) Entry {
	entry := Entry{
		ID:             post.PostURL,
		Title:          typedContent(post.PostTitle),
		Updated:        post.LastUpdatedTimestamp,
		Summary:        typedContent(post.PostDesc),
		AlternateLinks: alternateLinks(post),
	}
	setOptionalEntryProperties(&entry, post, pubDate)
	return entry
}

func typedContent(obj *models.ContentObject) *Content {
	if obj == nil {
		return nil
	}
	return &Content{Type: obj.Type, Value: obj.Value}
}

// alternateLinks yields the single rel=alternate link for the post URL,
// or nothing at all when the URL is blank. A link with an empty href is
// never emitted.
func alternateLinks(post *models.StagingPost) []Link {
	if isBlank(post.PostURL) {
		return nil
	}
	return []Link{{Rel: "alternate", Href: post.PostURL}}
}

func setOptionalEntryProperties(entry *Entry, post *models.StagingPost, pubDate time.Time) {
	entry.OtherLinks = otherLinks(post)
	entry.Authors = persons(post.Authors)
	entry.Contributors = persons(post.Contributors)
	entry.Rights = post.PostRights
	if post.PublishTimestamp != nil {
		entry.Published = post.PublishTimestamp
	} else {
		entry.Published = &pubDate
	}
	entry.Categories = entryCategories(post)
	entry.Contents = contents(post)
	entry.Media = post.PostMedia
	entry.ITunes = post.PostITunes
}

// otherLinks concatenates the post's supplementary links (minus any
// rel=alternate, accounted for separately) with one rel=enclosure link
// per enclosure.
func otherLinks(post *models.StagingPost) []Link {
	var links []Link
	for _, postURL := range post.PostURLs {
		if postURL.Rel == "alternate" {
			continue
		}
		links = append(links, Link{
			Title:    postURL.Title,
			Type:     postURL.Type,
			Href:     postURL.Href,
			Hreflang: postURL.Hreflang,
			Rel:      postURL.Rel,
		})
	}
	for _, enclosure := range post.Enclosures {
		link := Link{
			Rel:  "enclosure",
			Href: enclosure.URL,
			Type: enclosure.Type,
		}
		if enclosure.Length != nil {
			length := *enclosure.Length
			link.Length = &length
		}
		links = append(links, link)
	}
	return links
}

func persons(list []models.PostPerson) []Person {
	if len(list) == 0 {
		return nil
	}
	persons := make([]Person, 0, len(list))
	for _, p := range list {
		persons = append(persons, Person{Name: p.Name, Email: p.Email, URI: p.URI})
	}
	return persons
}

// entryCategories carries each free-text post category as term and
// label both, with no scheme.
func entryCategories(post *models.StagingPost) []Category {
	if len(post.PostCategories) == 0 {
		return nil
	}
	categories := make([]Category, 0, len(post.PostCategories))
	for _, value := range post.PostCategories {
		categories = append(categories, Category{Term: value, Label: value})
	}
	return categories
}

func contents(post *models.StagingPost) []Content {
	if len(post.PostContents) == 0 {
		return nil
	}
	contents := make([]Content, 0, len(post.PostContents))
	for _, c := range post.PostContents {
		contents = append(contents, Content{Type: c.Type, Value: c.Value})
	}
	return contents
}
