// Package process runs publish cycles: it loads every queue, fans the
// work out across a worker pool, and drives the publication dispatcher
// once per queue.
package process

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/publisher"
	"newsroot/syndicator/internal/storage"
)

// PublishProcessor handles parallel publication of queue feeds.
type PublishProcessor struct {
	repo        *storage.Repository
	dispatcher  *publisher.Publisher
	WorkerCount int

	published atomic.Int64
	failed    atomic.Int64
}

// NewPublishProcessor creates a publish processor over an existing
// repository and dispatcher.
func NewPublishProcessor(repo *storage.Repository, dispatcher *publisher.Publisher, workerCount int) (*PublishProcessor, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository cannot be nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &PublishProcessor{
		repo:        repo,
		dispatcher:  dispatcher,
		WorkerCount: workerCount,
	}, nil
}

// PublishAll publishes both wire formats for every stored queue. Each
// queue is independent; per-queue failures are counted and logged, not
// propagated.
func (p *PublishProcessor) PublishAll(ctx context.Context) error {
	queues, err := p.repo.ListQueues(ctx)
	if err != nil {
		return fmt.Errorf("failed to load queues: %w", err)
	}
	if len(queues) == 0 {
		log.Info().Msg("No queues to publish")
		return nil
	}

	log.Info().
		Int("queue_count", len(queues)).
		Int("worker_count", p.WorkerCount).
		Msg("Starting publish run")

	queueCh := make(chan models.QueueDefinition)
	var wg sync.WaitGroup
	for i := 0; i < p.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for queue := range queueCh {
				p.publishQueue(ctx, queue)
			}
		}()
	}

	startTime := time.Now()
loop:
	for _, queue := range queues {
		select {
		case queueCh <- queue:
		case <-ctx.Done():
			break loop
		}
	}
	close(queueCh)
	wg.Wait()

	log.Info().
		Dur("duration", time.Since(startTime)).
		Int64("published", p.published.Load()).
		Int64("failed", p.failed.Load()).
		Msg("Publish run finished")

	return ctx.Err()
}

func (p *PublishProcessor) publishQueue(ctx context.Context, queue models.QueueDefinition) {
	posts, err := p.repo.ListPostsForQueue(ctx, queue.ID)
	if err != nil {
		p.failed.Add(1)
		log.Error().Err(err).Str("ident", queue.Ident).Msg("Failed to load posts for queue")
		return
	}

	result := p.dispatcher.Publish(ctx, &queue, posts, time.Now())
	for format, outcome := range map[publisher.Format]publisher.Outcome{
		publisher.FormatRSS:  result.RSS,
		publisher.FormatAtom: result.Atom,
	} {
		if outcome.Ok() {
			p.published.Add(1)
			continue
		}
		p.failed.Add(1)
		log.Error().
			Err(outcome.Err).
			Str("ident", queue.Ident).
			Str("format", string(format)).
			Msg("Format publication failed")
	}
}

// Stats returns the number of published and failed format publications
// in this run.
func (p *PublishProcessor) Stats() (published, failed int64) {
	return p.published.Load(), p.failed.Load()
}
