// Package importer seeds the database from a JSON file of queue
// definitions and their staging posts.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/storage"
)

// SeedFile is the on-disk seed format.
type SeedFile struct {
	Queues []SeedQueue `json:"queues"`
}

// SeedQueue is one queue definition plus its posts.
type SeedQueue struct {
	models.QueueDefinition
	Posts []models.StagingPost `json:"posts,omitempty"`
}

// Importer handles the seed import process
type Importer struct {
	repo *storage.Repository
}

// NewImporter creates a new seed importer
func NewImporter(repo *storage.Repository) *Importer {
	return &Importer{repo: repo}
}

// ImportSeed imports queues and posts from a JSON seed file
func (i *Importer) ImportSeed(ctx context.Context, seedPath string) error {
	log.Info().Str("seed", seedPath).Msg("Starting seed import")

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	var queueCount, postCount int
	for idx := range seed.Queues {
		sq := &seed.Queues[idx]
		if sq.TransportIdent == "" {
			log.Warn().Str("ident", sq.Ident).Msg("Skipping queue without transport ident")
			continue
		}
		if err := i.repo.InsertQueue(ctx, &sq.QueueDefinition); err != nil {
			return err
		}
		queueCount++
		for j := range sq.Posts {
			post := &sq.Posts[j]
			post.QueueID = sq.ID
			if post.Username == "" {
				post.Username = sq.Username
			}
			if err := i.repo.InsertPost(ctx, post); err != nil {
				return err
			}
			postCount++
		}
	}

	log.Info().
		Int("queue_count", queueCount).
		Int("post_count", postCount).
		Msg("Import completed successfully")
	return nil
}
