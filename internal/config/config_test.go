package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	assert.Equal(t, "fallback", GetEnvString("SYNDICATOR_TEST_UNSET", "fallback"))

	t.Setenv("SYNDICATOR_TEST_STR", "from-env")
	assert.Equal(t, "from-env", GetEnvString("SYNDICATOR_TEST_STR", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	assert.Equal(t, 7, GetEnvInt("SYNDICATOR_TEST_UNSET", 7))

	t.Setenv("SYNDICATOR_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("SYNDICATOR_TEST_INT", 7))

	t.Setenv("SYNDICATOR_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvInt("SYNDICATOR_TEST_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	assert.False(t, GetEnvBool("SYNDICATOR_TEST_UNSET", false))

	t.Setenv("SYNDICATOR_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("SYNDICATOR_TEST_BOOL", false))

	t.Setenv("SYNDICATOR_TEST_BOOL", "maybe")
	assert.False(t, GetEnvBool("SYNDICATOR_TEST_BOOL", false))
}

func TestGetEnvLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, GetEnvLogLevel("SYNDICATOR_TEST_UNSET", zerolog.InfoLevel))

	t.Setenv("SYNDICATOR_TEST_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, GetEnvLogLevel("SYNDICATOR_TEST_LEVEL", zerolog.InfoLevel))
}

func TestPublisherTemplates(t *testing.T) {
	p := Publisher{
		ChannelLinkTemplate:     "https://feeds.example.com/queue/%s",
		ChannelURITemplate:      "https://feeds.example.com/feed/%s",
		ChannelImageURLTemplate: "https://feeds.example.com/img/%s",
	}

	assert.Equal(t, "https://feeds.example.com/queue/abc123", p.ChannelLink("abc123"))
	assert.Equal(t, "https://feeds.example.com/feed/abc123", p.ChannelURI("abc123"))
	assert.Equal(t, "https://feeds.example.com/img/img-42", p.ChannelImageURL("img-42"))
}

func TestListenAddr(t *testing.T) {
	cfg := &Config{ServerHost: "127.0.0.1", ServerPort: 8080}
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())

	cfg = &Config{ServerPort: 9000}
	assert.Equal(t, ":9000", cfg.ListenAddr())
}
