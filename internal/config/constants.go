package config

// Constants defining default values for application configuration
const (
	DefaultSeedPath = "./seed.json"
	DefaultDBPath   = "./syndicator.db"

	DefaultServerPort = 8080
	DefaultServerHost = "" // Empty string means all interfaces

	DefaultWorkerCount = 0  // 0 means use runtime.NumCPU()
	DefaultInterval    = 15 // Minutes between publish runs

	DefaultLogLevel = "debug"

	DefaultChannelImageHeight      = 144
	DefaultChannelImageWidth       = 144
	DefaultChannelLinkTemplate     = "https://localhost/queue/%s"
	DefaultChannelURITemplate      = "https://localhost/feed/%s"
	DefaultChannelImageURLTemplate = "https://localhost/img/%s"
	DefaultRSSFeedType             = "rss_2.0"
	DefaultAtomFeedType            = "atom_1.0"
	DefaultChannelTTL              = 10 // Minutes a channel may be cached
	DefaultGeneratorValue          = "syndicator"
	DefaultGeneratorURL            = "https://localhost"
	DefaultGeneratorVersion        = "1.0"
)
