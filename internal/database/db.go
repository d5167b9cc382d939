package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DB represents the database connection
type DB struct {
	*sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS queue_definitions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ident TEXT NOT NULL,
	title TEXT,
	description TEXT,
	generator TEXT,
	transport_ident TEXT UNIQUE NOT NULL,
	username TEXT NOT NULL,
	export_config TEXT,
	copyright TEXT,
	language TEXT,
	image_ident TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS staging_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	queue_id INTEGER NOT NULL,
	importer_id TEXT,
	importer_desc TEXT,
	username TEXT,
	post_title TEXT,
	post_desc TEXT,
	post_contents TEXT,
	post_media TEXT,
	post_itunes TEXT,
	post_url TEXT,
	post_urls TEXT,
	post_img_url TEXT,
	post_hash TEXT,
	post_comment TEXT,
	post_rights TEXT,
	contributors TEXT,
	authors TEXT,
	post_categories TEXT,
	enclosures TEXT,
	import_timestamp TIMESTAMP,
	publish_timestamp TIMESTAMP,
	expiration_timestamp TIMESTAMP,
	last_updated_timestamp TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (queue_id) REFERENCES queue_definitions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rendered_feeds (
	transport_ident TEXT NOT NULL,
	format TEXT NOT NULL,
	body TEXT NOT NULL,
	published_at TIMESTAMP NOT NULL,
	PRIMARY KEY (transport_ident, format)
);

CREATE INDEX IF NOT EXISTS idx_staging_posts_queue_id ON staging_posts(queue_id);
CREATE INDEX IF NOT EXISTS idx_staging_posts_created_at ON staging_posts(created_at);
`

// NewDB creates a new database connection with optimized settings
func NewDB(cfg *Config) (*DB, error) {
	dir := filepath.Dir(cfg.DBPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = defaultMaxOpenConns
	}

	// WAL mode allows concurrent reads while writing
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		cfg.DBPath, cfg.BusyTimeoutMS)

	if cfg.ReadOnly {
		dsn += "&mode=ro"
		log.Info().Str("path", cfg.DBPath).Msg("Opening database in Read-Only mode")
	} else {
		log.Info().Str("path", cfg.DBPath).Msg("Opening database in Read-Write mode")
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	var pragmas []string
	if cfg.ReadOnly {
		pragmas = []string{
			fmt.Sprintf("PRAGMA cache_size = %d;", cfg.CacheSizeKB),
			"PRAGMA temp_store = MEMORY;",
			"PRAGMA query_only = ON;",
			"PRAGMA foreign_keys = OFF;",
		}
	} else {
		pragmas = []string{
			fmt.Sprintf("PRAGMA cache_size = %d;", cfg.CacheSizeKB),
			"PRAGMA temp_store = MEMORY;",
			"PRAGMA foreign_keys = ON;",
		}
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Warn().Err(err).Str("pragma", pragma).Msg("Failed to set PRAGMA")
		}
	}

	if !cfg.ReadOnly {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	log.Info().Bool("read_only", cfg.ReadOnly).Msg("Database connection successful")
	return &DB{db}, nil
}

// DeleteDB removes the database file if it exists
func DeleteDB(dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		return os.Remove(dbPath)
	}
	return nil
}
