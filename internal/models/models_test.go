package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTitle(t *testing.T) {
	q := QueueDefinition{Ident: "tech-news", Title: "Tech News"}
	assert.Equal(t, "Tech News", q.DisplayTitle())

	q.Title = ""
	assert.Equal(t, "tech-news", q.DisplayTitle())
}

func TestDisplayDescription(t *testing.T) {
	q := QueueDefinition{Ident: "tech-news", Title: "Tech News", Description: "All the tech news"}
	assert.Equal(t, "All the tech news", q.DisplayDescription())

	q.Description = ""
	assert.Equal(t, "Tech News", q.DisplayDescription())

	q.Title = ""
	assert.Equal(t, "tech-news", q.DisplayDescription())
}

func TestLatestUpdate(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, LatestUpdate(nil))
	assert.Nil(t, LatestUpdate([]StagingPost{{}, {}}))

	got := LatestUpdate([]StagingPost{
		{LastUpdatedTimestamp: &older},
		{},
		{LastUpdatedTimestamp: &newer},
	})
	assert.NotNil(t, got)
	assert.Equal(t, newer, *got)
}
