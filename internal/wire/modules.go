package wire

import "newsroot/syndicator/internal/models"

const (
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"
	mediaNamespace   = "http://search.yahoo.com/mrss/"
	itunesNamespace  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
)

// mediaModule renders a post's Media RSS payload. Embedded by value in
// item/entry wire structs; a zero module emits nothing.
type mediaModule struct {
	MediaContent   *mediaContent   `xml:"media:content,omitempty"`
	MediaThumbnail *mediaThumbnail `xml:"media:thumbnail,omitempty"`
	MediaTitle     string          `xml:"media:title,omitempty"`
	MediaDesc      string          `xml:"media:description,omitempty"`
	MediaCredit    string          `xml:"media:credit,omitempty"`
}

type mediaContent struct {
	URL      string `xml:"url,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Width    int    `xml:"width,attr,omitempty"`
	Height   int    `xml:"height,attr,omitempty"`
	Duration int64  `xml:"duration,attr,omitempty"`
}

type mediaThumbnail struct {
	URL string `xml:"url,attr"`
}

func toMediaModule(media *models.PostMedia) mediaModule {
	if media == nil {
		return mediaModule{}
	}
	module := mediaModule{
		MediaTitle:  media.Title,
		MediaDesc:   media.Description,
		MediaCredit: media.Credit,
	}
	if media.ContentURL != "" {
		module.MediaContent = &mediaContent{
			URL:      media.ContentURL,
			Type:     media.ContentType,
			Width:    media.Width,
			Height:   media.Height,
			Duration: media.Duration,
		}
	}
	if media.ThumbnailURL != "" {
		module.MediaThumbnail = &mediaThumbnail{URL: media.ThumbnailURL}
	}
	return module
}

func (m mediaModule) empty() bool {
	return m == mediaModule{}
}

// itunesModule renders a post's iTunes podcast payload. Embedded by
// value in item/entry wire structs; a zero module emits nothing.
type itunesModule struct {
	ITunesAuthor      string       `xml:"itunes:author,omitempty"`
	ITunesSubtitle    string       `xml:"itunes:subtitle,omitempty"`
	ITunesSummary     string       `xml:"itunes:summary,omitempty"`
	ITunesImage       *itunesImage `xml:"itunes:image,omitempty"`
	ITunesDuration    int64        `xml:"itunes:duration,omitempty"`
	ITunesExplicit    string       `xml:"itunes:explicit,omitempty"`
	ITunesEpisodeType string       `xml:"itunes:episodeType,omitempty"`
	ITunesEpisode     int          `xml:"itunes:episode,omitempty"`
	ITunesSeason      int          `xml:"itunes:season,omitempty"`
	ITunesKeywords    string       `xml:"itunes:keywords,omitempty"`
	ITunesBlock       string       `xml:"itunes:block,omitempty"`
}

type itunesImage struct {
	Href string `xml:"href,attr"`
}

func toITunesModule(itunes *models.PostITunes) itunesModule {
	if itunes == nil {
		return itunesModule{}
	}
	module := itunesModule{
		ITunesAuthor:      itunes.Author,
		ITunesSubtitle:    itunes.Subtitle,
		ITunesSummary:     itunes.Summary,
		ITunesDuration:    itunes.Duration,
		ITunesEpisodeType: itunes.EpisodeType,
		ITunesEpisode:     itunes.Episode,
		ITunesSeason:      itunes.Season,
		ITunesKeywords:    itunes.Keywords,
	}
	if itunes.ImageURL != "" {
		module.ITunesImage = &itunesImage{Href: itunes.ImageURL}
	}
	if itunes.Explicit {
		module.ITunesExplicit = "yes"
	}
	if itunes.Block {
		module.ITunesBlock = "yes"
	}
	return module
}

func (m itunesModule) empty() bool {
	return m == itunesModule{}
}
