package rss

import "newsroot/syndicator/internal/models"

// toItem maps a single staging post onto an RSS item.
func toItem(post *models.StagingPost) Item {
	item := Item{
		Title:       postTitle(post),
		Link:        post.PostURL,
		URI:         post.PostURL,
		Description: description(post),
	}
	setOptionalItemProperties(&item, post)
	return item
}

func postTitle(post *models.StagingPost) string {
	if post.PostTitle != nil {
		return post.PostTitle.Value
	}
	return ""
}

// description carries the post body and its type tag; a blank body
// omits the description entirely.
func description(post *models.StagingPost) *Description {
	if post.PostDesc == nil || isBlank(post.PostDesc.Value) {
		return nil
	}
	return &Description{
		Type:  post.PostDesc.Type,
		Value: post.PostDesc.Value,
	}
}

func setOptionalItemProperties(item *Item, post *models.StagingPost) {
	if len(post.Authors) > 0 {
		item.Author = post.Authors[0].Name
	}
	item.Categories = itemCategories(post)
	item.Comments = post.PostComment
	item.Enclosures = enclosures(post)
	item.GUID = &GUID{Value: post.PostHash, PermaLink: false}
	item.PubDate = post.PublishTimestamp
	item.ExpirationDate = post.ExpirationTimestamp
	item.Content = content(post)
	item.Media = post.PostMedia
	item.ITunes = post.PostITunes
}

func itemCategories(post *models.StagingPost) []Category {
	if len(post.PostCategories) == 0 {
		return nil
	}
	categories := make([]Category, 0, len(post.PostCategories))
	for _, value := range post.PostCategories {
		categories = append(categories, Category{Value: value})
	}
	return categories
}

func enclosures(post *models.StagingPost) []Enclosure {
	if len(post.Enclosures) == 0 {
		return nil
	}
	enclosures := make([]Enclosure, 0, len(post.Enclosures))
	for _, pe := range post.Enclosures {
		enclosure := Enclosure{URL: pe.URL, Type: pe.Type}
		if pe.Length != nil {
			length := *pe.Length
			enclosure.Length = &length
		}
		enclosures = append(enclosures, enclosure)
	}
	return enclosures
}

func content(post *models.StagingPost) *Content {
	if len(post.PostContents) == 0 {
		return nil
	}
	first := post.PostContents[0]
	return &Content{Type: first.Type, Value: first.Value}
}
