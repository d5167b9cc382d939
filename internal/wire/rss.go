package wire

import (
	"encoding/xml"
	"strings"
	"time"

	"newsroot/syndicator/internal/rss"
)

// rssDocument is the XML wire form of an RSS 2.0 channel.
type rssDocument struct {
	XMLName      xml.Name    `xml:"rss"`
	Version      string      `xml:"version,attr"`
	ContentXmlns string      `xml:"xmlns:content,attr,omitempty"`
	MediaXmlns   string      `xml:"xmlns:media,attr,omitempty"`
	ITunesXmlns  string      `xml:"xmlns:itunes,attr,omitempty"`
	Channel      *rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string         `xml:"title"`
	Link           string         `xml:"link"`
	Description    string         `xml:"description"`
	Language       string         `xml:"language,omitempty"`
	Copyright      string         `xml:"copyright,omitempty"`
	ManagingEditor string         `xml:"managingEditor,omitempty"`
	WebMaster      string         `xml:"webMaster,omitempty"`
	PubDate        string         `xml:"pubDate,omitempty"`
	LastBuildDate  string         `xml:"lastBuildDate,omitempty"`
	Categories     []rssCategory  `xml:"category,omitempty"`
	Generator      string         `xml:"generator,omitempty"`
	Docs           string         `xml:"docs,omitempty"`
	Cloud          *rssCloud      `xml:"cloud,omitempty"`
	TTL            int            `xml:"ttl,omitempty"`
	Image          *rssImage      `xml:"image,omitempty"`
	Rating         string         `xml:"rating,omitempty"`
	TextInput      *rssTextInput  `xml:"textInput,omitempty"`
	SkipHours      *rssSkipHours  `xml:"skipHours,omitempty"`
	SkipDays       *rssSkipDays   `xml:"skipDays,omitempty"`
	Items          []rssItem      `xml:"item"`
}

type rssCategory struct {
	Domain string `xml:"domain,attr,omitempty"`
	Value  string `xml:",chardata"`
}

type rssCloud struct {
	Domain            string `xml:"domain,attr,omitempty"`
	Port              int    `xml:"port,attr"`
	Path              string `xml:"path,attr,omitempty"`
	RegisterProcedure string `xml:"registerProcedure,attr,omitempty"`
	Protocol          string `xml:"protocol,attr,omitempty"`
}

type rssImage struct {
	URL         string `xml:"url"`
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Width       int    `xml:"width,omitempty"`
	Height      int    `xml:"height,omitempty"`
	Description string `xml:"description,omitempty"`
}

type rssTextInput struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Name        string `xml:"name"`
	Link        string `xml:"link"`
}

type rssSkipHours struct {
	Hours []int `xml:"hour"`
}

type rssSkipDays struct {
	Days []string `xml:"day"`
}

type rssItem struct {
	Title       string         `xml:"title"`
	Link        string         `xml:"link,omitempty"`
	Description string         `xml:"description,omitempty"`
	Author      string         `xml:"author,omitempty"`
	Categories  []rssCategory  `xml:"category,omitempty"`
	Comments    string         `xml:"comments,omitempty"`
	Enclosures  []rssEnclosure `xml:"enclosure,omitempty"`
	GUID        *rssGUID       `xml:"guid,omitempty"`
	PubDate     string         `xml:"pubDate,omitempty"`
	Content     *rssContent    `xml:"content:encoded,omitempty"`

	mediaModule
	itunesModule
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr,omitempty"`
	Type   string `xml:"type,attr,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssContent struct {
	Value string `xml:",cdata"`
}

// rssVersion derives the wire version attribute from a configured feed
// type tag, e.g. "rss_2.0" yields "2.0".
func rssVersion(feedType string) string {
	if v, ok := strings.CutPrefix(feedType, "rss_"); ok {
		return v
	}
	return "2.0"
}

func toRSSDocument(channel *rss.Channel) *rssDocument {
	doc := &rssDocument{
		Version: rssVersion(channel.FeedType),
		Channel: &rssChannel{
			Title:          channel.Title,
			Link:           channel.Link,
			Description:    channel.Description,
			Language:       channel.Language,
			Copyright:      channel.Copyright,
			ManagingEditor: channel.ManagingEditor,
			WebMaster:      channel.WebMaster,
			PubDate:        rssTime(channel.PubDate),
			LastBuildDate:  rssTime(channel.LastBuildDate),
			Generator:      channel.Generator,
			Docs:           channel.Docs,
			TTL:            channel.TTL,
			Rating:         channel.Rating,
		},
	}
	for _, c := range channel.Categories {
		doc.Channel.Categories = append(doc.Channel.Categories, rssCategory{Domain: c.Domain, Value: c.Value})
	}
	if channel.Cloud != nil {
		doc.Channel.Cloud = &rssCloud{
			Domain:            channel.Cloud.Domain,
			Port:              channel.Cloud.Port,
			Path:              channel.Cloud.Path,
			RegisterProcedure: channel.Cloud.RegisterProcedure,
			Protocol:          channel.Cloud.Protocol,
		}
	}
	if channel.Image != nil {
		doc.Channel.Image = &rssImage{
			URL:         channel.Image.URL,
			Title:       channel.Image.Title,
			Link:        channel.Image.Link,
			Width:       channel.Image.Width,
			Height:      channel.Image.Height,
			Description: channel.Image.Description,
		}
	}
	if channel.TextInput != nil {
		doc.Channel.TextInput = &rssTextInput{
			Title:       channel.TextInput.Title,
			Description: channel.TextInput.Description,
			Name:        channel.TextInput.Name,
			Link:        channel.TextInput.Link,
		}
	}
	if len(channel.SkipHours) > 0 {
		doc.Channel.SkipHours = &rssSkipHours{Hours: channel.SkipHours}
	}
	if len(channel.SkipDays) > 0 {
		doc.Channel.SkipDays = &rssSkipDays{Days: channel.SkipDays}
	}
	for i := range channel.Items {
		item := toRSSItem(&channel.Items[i])
		doc.Channel.Items = append(doc.Channel.Items, item)
		if item.Content != nil {
			doc.ContentXmlns = contentNamespace
		}
		if !item.mediaModule.empty() {
			doc.MediaXmlns = mediaNamespace
		}
		if !item.itunesModule.empty() {
			doc.ITunesXmlns = itunesNamespace
		}
	}
	return doc
}

func toRSSItem(item *rss.Item) rssItem {
	out := rssItem{
		Title:        item.Title,
		Link:         item.Link,
		Author:       item.Author,
		Comments:     item.Comments,
		PubDate:      rssTime(item.PubDate),
		mediaModule:  toMediaModule(item.Media),
		itunesModule: toITunesModule(item.ITunes),
	}
	if item.Description != nil {
		out.Description = item.Description.Value
	}
	for _, c := range item.Categories {
		out.Categories = append(out.Categories, rssCategory{Domain: c.Domain, Value: c.Value})
	}
	for _, e := range item.Enclosures {
		enclosure := rssEnclosure{URL: e.URL, Type: e.Type}
		if e.Length != nil {
			enclosure.Length = *e.Length
		}
		out.Enclosures = append(out.Enclosures, enclosure)
	}
	if item.GUID != nil {
		out.GUID = &rssGUID{IsPermaLink: item.GUID.PermaLink, Value: item.GUID.Value}
	}
	if item.Content != nil {
		out.Content = &rssContent{Value: item.Content.Value}
	}
	return out
}

func rssTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC1123Z)
}
