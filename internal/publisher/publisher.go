// Package publisher orchestrates feed publication: it drives the RSS
// and ATOM builders for a queue, hands the documents to the rendered
// feed store, and reports a per-format outcome. The two formats are
// fully independent; a failure on one never aborts the other.
package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"newsroot/syndicator/internal/atom"
	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/rss"
	"newsroot/syndicator/internal/wire"
)

// Format selects one of the two wire formats.
type Format string

const (
	FormatRSS  Format = "RSS"
	FormatAtom Format = "ATOM"
)

// QueueResolver looks up a queue definition for a user. Implemented by
// the storage layer; swapped for stubs in tests.
type QueueResolver interface {
	ResolveQueue(ctx context.Context, username string, queueID int64) (*models.QueueDefinition, error)
}

// RenderedFeedStore persists rendered feed documents keyed by transport
// identifier.
type RenderedFeedStore interface {
	PutRSSChannel(ctx context.Context, transportIdent string, channel *rss.Channel) error
	PutAtomFeed(ctx context.Context, transportIdent string, feed *atom.Feed) error
}

// Outcome is the per-format result of a publish call.
type Outcome struct {
	TransportURL string
	UserURL      string
	Err          error
	PublishedAt  time.Time
}

// Ok reports whether the format published without error.
func (o Outcome) Ok() bool {
	return o.Err == nil
}

// PubResult carries one outcome per wire format.
type PubResult struct {
	RSS  Outcome
	Atom Outcome
}

// QueuePreview is a non-persisted render of one queue's feed, flattened
// to a single line for inline display.
type QueuePreview struct {
	QueueID  int64
	Artifact string
}

// Publisher is the feed publication dispatcher.
type Publisher struct {
	opts     config.Publisher
	channels *rss.ChannelBuilder
	feeds    *atom.FeedBuilder
	writer   *wire.Writer
	queues   QueueResolver
	store    RenderedFeedStore
}

// New creates a dispatcher wired to the given queue resolver and
// rendered feed store.
func New(opts config.Publisher, queues QueueResolver, store RenderedFeedStore) *Publisher {
	return &Publisher{
		opts:     opts,
		channels: rss.NewChannelBuilder(opts),
		feeds:    atom.NewFeedBuilder(opts),
		writer:   wire.NewWriter(),
		queues:   queues,
		store:    store,
	}
}

// Publish builds and stores both wire formats for a queue. Each format
// is attempted regardless of the other's outcome; errors are captured
// in the per-format outcome rather than returned.
func (p *Publisher) Publish(ctx context.Context, queue *models.QueueDefinition, posts []models.StagingPost, pubDate time.Time) PubResult {
	result := PubResult{
		RSS:  p.newOutcome(queue, pubDate),
		Atom: p.newOutcome(queue, pubDate),
	}
	if queue != nil {
		log.Info().
			Str("ident", queue.Ident).
			Str("transport_ident", queue.TransportIdent).
			Int("post_count", len(posts)).
			Msg("Publishing RSS/ATOM feeds")
	}

	result.RSS.Err = p.publishRSS(ctx, queue, posts, pubDate)
	result.Atom.Err = p.publishAtom(ctx, queue, posts, pubDate)

	return result
}

func (p *Publisher) newOutcome(queue *models.QueueDefinition, pubDate time.Time) Outcome {
	outcome := Outcome{PublishedAt: pubDate}
	if queue != nil && queue.TransportIdent != "" {
		outcome.TransportURL = p.opts.ChannelURI(queue.TransportIdent)
		outcome.UserURL = p.opts.ChannelLink(queue.TransportIdent)
	}
	return outcome
}

func (p *Publisher) publishRSS(ctx context.Context, queue *models.QueueDefinition, posts []models.StagingPost, pubDate time.Time) error {
	channel, err := p.channels.BuildChannel(queue, posts, pubDate)
	if err != nil {
		return fmt.Errorf("failed to build RSS channel: %w", err)
	}
	if err := p.store.PutRSSChannel(ctx, queue.TransportIdent, channel); err != nil {
		return fmt.Errorf("failed to store RSS channel: %w", err)
	}
	log.Info().
		Str("ident", queue.Ident).
		Str("transport_ident", queue.TransportIdent).
		Msg("Published RSS feed")
	return nil
}

func (p *Publisher) publishAtom(ctx context.Context, queue *models.QueueDefinition, posts []models.StagingPost, pubDate time.Time) error {
	feed, err := p.feeds.BuildFeed(queue, posts, pubDate)
	if err != nil {
		return fmt.Errorf("failed to build ATOM feed: %w", err)
	}
	if err := p.store.PutAtomFeed(ctx, queue.TransportIdent, feed); err != nil {
		return fmt.Errorf("failed to store ATOM feed: %w", err)
	}
	log.Info().
		Str("ident", queue.Ident).
		Str("transport_ident", queue.TransportIdent).
		Msg("Published ATOM feed")
	return nil
}

// Preview renders the requested format for each distinct queue
// referenced by the posts, without persisting anything. Queues that
// cannot be resolved are logged and skipped; render failures yield an
// empty artifact for that queue. Group order follows first appearance
// in the input.
func (p *Publisher) Preview(ctx context.Context, username string, posts []models.StagingPost, format Format) ([]QueuePreview, error) {
	if format != FormatRSS && format != FormatAtom {
		return nil, fmt.Errorf("unsupported preview format %q", format)
	}

	log.Info().
		Str("username", username).
		Int("post_count", len(posts)).
		Str("format", string(format)).
		Msg("Previewing feeds")

	var queueOrder []int64
	postsByQueue := make(map[int64][]models.StagingPost)
	for _, post := range posts {
		if _, seen := postsByQueue[post.QueueID]; !seen {
			queueOrder = append(queueOrder, post.QueueID)
		}
		postsByQueue[post.QueueID] = append(postsByQueue[post.QueueID], post)
	}

	previews := make([]QueuePreview, 0, len(queueOrder))
	for _, queueID := range queueOrder {
		preview, ok := p.previewQueue(ctx, username, queueID, postsByQueue[queueID], format)
		if ok {
			previews = append(previews, preview)
		}
	}
	return previews, nil
}

func (p *Publisher) previewQueue(ctx context.Context, username string, queueID int64, posts []models.StagingPost, format Format) (QueuePreview, bool) {
	queue, err := p.queues.ResolveQueue(ctx, username, queueID)
	if err != nil || queue == nil {
		log.Warn().
			Err(err).
			Int64("queue_id", queueID).
			Str("username", username).
			Msg("Unable to resolve queue for preview")
		return QueuePreview{}, false
	}

	artifact, err := p.renderPreview(queue, posts, format)
	if err != nil {
		log.Error().
			Err(err).
			Int64("queue_id", queueID).
			Str("format", string(format)).
			Msg("Unable to render feed preview")
		artifact = ""
	}

	return QueuePreview{QueueID: queueID, Artifact: flatten(artifact)}, true
}

func (p *Publisher) renderPreview(queue *models.QueueDefinition, posts []models.StagingPost, format Format) (string, error) {
	now := time.Now()
	switch format {
	case FormatRSS:
		channel, err := p.channels.BuildChannel(queue, posts, now)
		if err != nil {
			return "", err
		}
		return p.writer.ChannelXML(channel)
	default:
		feed, err := p.feeds.BuildFeed(queue, posts, now)
		if err != nil {
			return "", err
		}
		return p.writer.FeedXML(feed)
	}
}

// flatten strips line breaks so the artifact is suitable for inline
// display.
func flatten(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
