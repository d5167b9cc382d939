package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	// File paths
	SeedPath string
	DBPath   string

	// Server settings
	ServerHost string
	ServerPort int
	APIKey     string

	// Publishing settings
	Publisher   Publisher
	WorkerCount int
	Interval    time.Duration

	// Log settings
	LogLevel zerolog.Level
}

// Publisher holds the feed-generation options consumed by the RSS and
// ATOM builders. Templates are fmt format strings applied to a queue's
// transport identifier (or image identifier, for the image template).
type Publisher struct {
	ChannelImageHeight      int
	ChannelImageWidth       int
	ChannelLinkTemplate     string
	ChannelURITemplate      string
	ChannelImageURLTemplate string
	RSSFeedType             string
	AtomFeedType            string
	ChannelTTL              int
	DefaultGeneratorValue   string
	DefaultGeneratorURL     string
	DefaultGeneratorVersion string
}

// DefaultConfig returns an initial configuration with hardcoded defaults.
func DefaultConfig() *Config {
	logLevel, _ := zerolog.ParseLevel(DefaultLogLevel)

	return &Config{
		SeedPath:    DefaultSeedPath,
		DBPath:      DefaultDBPath,
		ServerHost:  DefaultServerHost,
		ServerPort:  DefaultServerPort,
		APIKey:      GetEnvString("SYNDICATOR_API_KEY", ""),
		Publisher:   DefaultPublisher(),
		WorkerCount: DefaultWorkerCount,
		Interval:    time.Duration(DefaultInterval) * time.Minute,
		LogLevel:    logLevel,
	}
}

// DefaultPublisher returns the publisher options with hardcoded
// defaults, overridable through the environment.
func DefaultPublisher() Publisher {
	return Publisher{
		ChannelImageHeight:      GetEnvInt("SYNDICATOR_CHANNEL_IMAGE_HEIGHT", DefaultChannelImageHeight),
		ChannelImageWidth:       GetEnvInt("SYNDICATOR_CHANNEL_IMAGE_WIDTH", DefaultChannelImageWidth),
		ChannelLinkTemplate:     GetEnvString("SYNDICATOR_CHANNEL_LINK_TEMPLATE", DefaultChannelLinkTemplate),
		ChannelURITemplate:      GetEnvString("SYNDICATOR_CHANNEL_URI_TEMPLATE", DefaultChannelURITemplate),
		ChannelImageURLTemplate: GetEnvString("SYNDICATOR_CHANNEL_IMAGE_URL_TEMPLATE", DefaultChannelImageURLTemplate),
		RSSFeedType:             GetEnvString("SYNDICATOR_RSS_FEED_TYPE", DefaultRSSFeedType),
		AtomFeedType:            GetEnvString("SYNDICATOR_ATOM_FEED_TYPE", DefaultAtomFeedType),
		ChannelTTL:              GetEnvInt("SYNDICATOR_CHANNEL_TTL", DefaultChannelTTL),
		DefaultGeneratorValue:   GetEnvString("SYNDICATOR_GENERATOR_VALUE", DefaultGeneratorValue),
		DefaultGeneratorURL:     GetEnvString("SYNDICATOR_GENERATOR_URL", DefaultGeneratorURL),
		DefaultGeneratorVersion: GetEnvString("SYNDICATOR_GENERATOR_VERSION", DefaultGeneratorVersion),
	}
}

// ChannelLink returns the user-facing channel URL for a transport ident.
func (p *Publisher) ChannelLink(transportIdent string) string {
	return fmt.Sprintf(p.ChannelLinkTemplate, transportIdent)
}

// ChannelURI returns the transport-facing feed URI for a transport ident.
func (p *Publisher) ChannelURI(transportIdent string) string {
	return fmt.Sprintf(p.ChannelURITemplate, transportIdent)
}

// ChannelImageURL returns the channel image URL for an image ident.
func (p *Publisher) ChannelImageURL(imageIdent string) string {
	return fmt.Sprintf(p.ChannelImageURLTemplate, imageIdent)
}

// ListenAddr returns the formatted listen address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
