package rss

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/exportconfig"
	"newsroot/syndicator/internal/models"
)

const defaultCloudPort = 80

// ChannelBuilder maps a queue definition plus its staging posts onto an
// RSS 2.0 channel document.
type ChannelBuilder struct {
	opts config.Publisher
}

// NewChannelBuilder creates a channel builder with the given publisher
// options.
func NewChannelBuilder(opts config.Publisher) *ChannelBuilder {
	return &ChannelBuilder{opts: opts}
}

// BuildChannel builds the channel document for a queue. The posts
// render one item each, in input order; pubDate is stamped by the
// caller. Optional channel properties come from the queue's rssConfig
// export-configuration block when one is present.
func (b *ChannelBuilder) BuildChannel(queue *models.QueueDefinition, posts []models.StagingPost, pubDate time.Time) (*Channel, error) {
	if queue == nil {
		return nil, fmt.Errorf("nil queue definition")
	}
	if queue.TransportIdent == "" {
		return nil, fmt.Errorf("queue %q has no transport ident", queue.Ident)
	}

	channel := &Channel{
		FeedType: b.opts.RSSFeedType,
		URI:      b.opts.ChannelURI(queue.TransportIdent),
		PubDate:  &pubDate,
	}
	channel.LastBuildDate = models.LatestUpdate(posts)

	b.setRequiredProperties(channel, queue)

	if rssConfig := exportconfig.ParseRSS(queue.ExportConfig); rssConfig != nil {
		if err := setOptionalProperties(channel, rssConfig); err != nil {
			return nil, err
		}
	}

	if len(posts) > 0 {
		items := make([]Item, 0, len(posts))
		for i := range posts {
			items = append(items, toItem(&posts[i]))
		}
		channel.Items = items
	}

	return channel, nil
}

func (b *ChannelBuilder) setRequiredProperties(channel *Channel, queue *models.QueueDefinition) {
	channel.Title = queue.DisplayTitle()
	channel.Link = b.opts.ChannelLink(queue.TransportIdent)
	channel.Description = queue.DisplayDescription()
	channel.TTL = b.opts.ChannelTTL
	channel.Language = queue.Language
	channel.Copyright = queue.Copyright
	channel.Generator = queue.Generator
	if channel.Generator == "" {
		channel.Generator = b.opts.DefaultGeneratorValue
	}
	channel.Image = b.channelImage(queue)
}

func (b *ChannelBuilder) channelImage(queue *models.QueueDefinition) *Image {
	if queue.ImageIdent == "" {
		return nil
	}
	return &Image{
		URL:         b.opts.ChannelImageURL(queue.ImageIdent),
		Link:        b.opts.ChannelURI(queue.TransportIdent),
		Title:       queue.DisplayTitle(),
		Description: queue.DisplayDescription(),
		Height:      b.opts.ChannelImageHeight,
		Width:       b.opts.ChannelImageWidth,
	}
}

func setOptionalProperties(channel *Channel, opts *exportconfig.RSSOptions) error {
	channel.ManagingEditor = exportconfig.Str(opts.ManagingEditor)
	channel.WebMaster = exportconfig.Str(opts.WebMaster)
	channel.Docs = exportconfig.Str(opts.Docs)
	channel.Rating = exportconfig.Str(opts.Rating)
	channel.Cloud = cloud(opts)
	channel.TextInput = textInput(opts)

	skipHours, err := parseSkipHours(exportconfig.Str(opts.SkipHours))
	if err != nil {
		return err
	}
	channel.SkipHours = skipHours
	channel.SkipDays = parseSkipDays(exportconfig.Str(opts.SkipDays))
	channel.Categories = categories(opts)
	return nil
}

func cloud(opts *exportconfig.RSSOptions) *Cloud {
	cloudPath := exportconfig.Str(opts.CloudPath)
	if isBlank(cloudPath) {
		return nil
	}
	return &Cloud{
		Domain:            exportconfig.Str(opts.CloudDomain),
		Path:              cloudPath,
		Port:              exportconfig.IntOr(opts.CloudPort, defaultCloudPort),
		Protocol:          exportconfig.Str(opts.CloudProtocol),
		RegisterProcedure: exportconfig.Str(opts.CloudRegisterProcedure),
	}
}

func textInput(opts *exportconfig.RSSOptions) *TextInput {
	ti := &TextInput{
		Title:       exportconfig.Str(opts.TextInputTitle),
		Description: exportconfig.Str(opts.TextInputDescription),
		Name:        exportconfig.Str(opts.TextInputName),
		Link:        exportconfig.Str(opts.TextInputLink),
	}
	if ti.Title == "" && ti.Description == "" && ti.Name == "" && ti.Link == "" {
		return nil
	}
	return ti
}

// parseSkipHours parses a comma-separated hour list, e.g. "1,2". An
// absent value yields an empty list, never nil.
func parseSkipHours(s string) ([]int, error) {
	hours := []int{}
	if isBlank(s) {
		return hours, nil
	}
	for _, part := range strings.Split(s, ",") {
		hour, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid skipHours value %q: %w", part, err)
		}
		hours = append(hours, hour)
	}
	return hours, nil
}

// parseSkipDays parses a comma-separated day-name list, e.g.
// "Monday,Tuesday". An absent value yields an empty list, never nil.
func parseSkipDays(s string) []string {
	days := []string{}
	if isBlank(s) {
		return days
	}
	for _, part := range strings.Split(s, ",") {
		days = append(days, strings.TrimSpace(part))
	}
	return days
}

func categories(opts *exportconfig.RSSOptions) []Category {
	categoryValue := exportconfig.Str(opts.CategoryValue)
	if isBlank(categoryValue) {
		return nil
	}
	return []Category{{
		Value:  categoryValue,
		Domain: exportconfig.Str(opts.CategoryDomain),
	}}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
