package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"newsroot/syndicator/internal/config"
	"newsroot/syndicator/internal/database"
	"newsroot/syndicator/internal/importer"
	"newsroot/syndicator/internal/models"
	"newsroot/syndicator/internal/process"
	"newsroot/syndicator/internal/publisher"
	"newsroot/syndicator/internal/server"
	"newsroot/syndicator/internal/storage"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func usage() {
	fmt.Println("Usage: syndicator [command] [options]")
	fmt.Println("Commands: import, publish, preview, server")
	fmt.Println("\nFor command-specific options, use: syndicator [command] -h")
}

func main() {
	cfg := config.DefaultConfig()

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importCmd.StringVar(&cfg.SeedPath, "seed", config.GetEnvString("SYNDICATOR_SEED_PATH", config.DefaultSeedPath),
		"Path to the JSON seed file (env: SYNDICATOR_SEED_PATH)")
	importCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("SYNDICATOR_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: SYNDICATOR_DB_PATH)")
	importLogLevel := importCmd.String("log-level", config.GetEnvString("SYNDICATOR_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: SYNDICATOR_LOG_LEVEL)")

	publishCmd := flag.NewFlagSet("publish", flag.ExitOnError)
	publishCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("SYNDICATOR_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: SYNDICATOR_DB_PATH)")
	var intervalMinutes int
	publishCmd.IntVar(&intervalMinutes, "interval", config.GetEnvInt("SYNDICATOR_INTERVAL", config.DefaultInterval),
		"Interval in minutes between publish runs, 0 for one-shot mode (env: SYNDICATOR_INTERVAL)")
	publishCmd.IntVar(&cfg.WorkerCount, "workers", config.GetEnvInt("SYNDICATOR_WORKER_COUNT", config.DefaultWorkerCount),
		"Number of worker goroutines for publishing, 0 for CPU count (env: SYNDICATOR_WORKER_COUNT)")
	publishLogLevel := publishCmd.String("log-level", config.GetEnvString("SYNDICATOR_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: SYNDICATOR_LOG_LEVEL)")

	previewCmd := flag.NewFlagSet("preview", flag.ExitOnError)
	previewCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("SYNDICATOR_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: SYNDICATOR_DB_PATH)")
	previewUsername := previewCmd.String("username", "", "Owner of the queues to preview")
	previewFormat := previewCmd.String("format", "RSS", "Preview format: RSS or ATOM")
	previewLogLevel := previewCmd.String("log-level", config.GetEnvString("SYNDICATOR_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: SYNDICATOR_LOG_LEVEL)")

	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("SYNDICATOR_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite database file (env: SYNDICATOR_DB_PATH)")
	serverCmd.StringVar(&cfg.ServerHost, "host", config.GetEnvString("SYNDICATOR_HOST", config.DefaultServerHost),
		"Host to bind the server to (env: SYNDICATOR_HOST)")
	serverCmd.IntVar(&cfg.ServerPort, "port", config.GetEnvInt("SYNDICATOR_PORT", config.DefaultServerPort),
		"Port to listen on (env: SYNDICATOR_PORT)")
	serverLogLevel := serverCmd.String("log-level", config.GetEnvString("SYNDICATOR_LOG_LEVEL", config.DefaultLogLevel),
		"Log level: debug, info, warn, error (env: SYNDICATOR_LOG_LEVEL)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "import":
		importCmd.Parse(os.Args[2:])
		setLogLevel(cfg, *importLogLevel)

		if err := runImport(cfg); err != nil {
			log.Error().Err(err).Msg("Import failed")
			os.Exit(1)
		}

	case "publish":
		publishCmd.Parse(os.Args[2:])
		setLogLevel(cfg, *publishLogLevel)
		cfg.Interval = time.Duration(intervalMinutes) * time.Minute

		if err := runPublish(cfg); err != nil {
			log.Error().Err(err).Msg("Publishing failed")
			os.Exit(1)
		}

	case "preview":
		previewCmd.Parse(os.Args[2:])
		setLogLevel(cfg, *previewLogLevel)

		if err := runPreview(cfg, *previewUsername, *previewFormat); err != nil {
			log.Error().Err(err).Msg("Preview failed")
			os.Exit(1)
		}

	case "server":
		serverCmd.Parse(os.Args[2:])
		setLogLevel(cfg, *serverLogLevel)

		if err := runServer(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		usage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		usage()
		os.Exit(1)
	}
}

func setLogLevel(cfg *config.Config, levelStr string) {
	if level, err := zerolog.ParseLevel(levelStr); err == nil {
		cfg.LogLevel = level
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
}

// runImport seeds a fresh database from a JSON file of queues and
// posts. It will prompt for confirmation before deleting an existing
// database.
func runImport(cfg *config.Config) error {
	if _, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Printf("Database %s already exists. All data will be lost as updates are not currently supported.\n", cfg.DBPath)
		fmt.Print("Delete and recreate? (y/N): ")

		var answer string
		fmt.Scanln(&answer)

		if strings.ToLower(answer) != "y" {
			log.Info().Msg("Operation canceled by user")
			return fmt.Errorf("operation canceled by user")
		}

		if err := database.DeleteDB(cfg.DBPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		log.Info().Str("path", cfg.DBPath).Msg("Deleted existing database")
	}

	repo, closeDB, err := openRepository(cfg, false)
	if err != nil {
		return err
	}
	defer closeDB()

	return importer.NewImporter(repo).ImportSeed(context.Background(), cfg.SeedPath)
}

// runPublish runs the publish processor either once or periodically
// based on configuration.
func runPublish(cfg *config.Config) error {
	if cfg.Interval <= 0 {
		log.Info().Msg("Running in one-shot mode")
	} else {
		log.Info().Int64("interval_minutes", int64(cfg.Interval.Minutes())).Msg("Running in periodic mode")
	}

	repo, closeDB, err := openRepository(cfg, false)
	if err != nil {
		return err
	}
	defer closeDB()

	dispatcher := publisher.New(cfg.Publisher, repo, repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	if err := runPublishCycle(ctx, repo, dispatcher, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("Publish cycle canceled by shutdown signal")
			return nil
		}
		return err
	}

	if cfg.Interval <= 0 {
		log.Info().Msg("One-shot publishing completed, exiting")
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", cfg.Interval).
		Time("next_run", time.Now().Add(cfg.Interval)).
		Msg("Waiting for next publish cycle")

	for {
		select {
		case <-ticker.C:
			log.Info().Msg("Starting scheduled publish cycle")

			if err := runPublishCycle(ctx, repo, dispatcher, cfg); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info().Msg("Publish cycle canceled by shutdown signal")
					return nil
				}
				log.Error().Err(err).Msg("Publish cycle failed")
				// Continue to the next cycle rather than exiting
			}

			log.Info().
				Time("next_run", time.Now().Add(cfg.Interval)).
				Msg("Waiting for next publish cycle")

		case <-ctx.Done():
			log.Info().Msg("Shutting down periodic publishing")
			return nil
		}
	}
}

// runPublishCycle executes a single publish run over every queue.
func runPublishCycle(ctx context.Context, repo *storage.Repository, dispatcher *publisher.Publisher, cfg *config.Config) error {
	processor, err := process.NewPublishProcessor(repo, dispatcher, cfg.WorkerCount)
	if err != nil {
		return fmt.Errorf("failed to initialize publish processor: %w", err)
	}

	cycleCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if err := processor.PublishAll(cycleCtx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ctx.Err()
		}
		return fmt.Errorf("publishing error: %w", err)
	}
	return nil
}

// runPreview renders every queue owned by a user to stdout without
// persisting anything.
func runPreview(cfg *config.Config, username, format string) error {
	if username == "" {
		return fmt.Errorf("a username is required for preview")
	}

	repo, closeDB, err := openRepository(cfg, true)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	queues, err := repo.ListQueues(ctx)
	if err != nil {
		return err
	}

	var posts []models.StagingPost
	for _, queue := range queues {
		if queue.Username != username {
			continue
		}
		queuePosts, err := repo.ListPostsForQueue(ctx, queue.ID)
		if err != nil {
			return err
		}
		posts = append(posts, queuePosts...)
	}

	dispatcher := publisher.New(cfg.Publisher, repo, repo)
	previews, err := dispatcher.Preview(ctx, username, posts, publisher.Format(strings.ToUpper(format)))
	if err != nil {
		return err
	}

	for _, preview := range previews {
		fmt.Printf("queue %d: %s\n", preview.QueueID, preview.Artifact)
	}
	return nil
}

// runServer starts the delivery server with the provided configuration.
func runServer(cfg *config.Config) error {
	repo, closeDB, err := openRepository(cfg, true)
	if err != nil {
		return err
	}
	defer closeDB()

	return server.RunServer(repo, cfg.ListenAddr(), log.Logger, cfg.APIKey)
}

func openRepository(cfg *config.Config, readOnly bool) (*storage.Repository, func(), error) {
	dbCfg := database.NewConfig(cfg.DBPath)
	dbCfg.ReadOnly = readOnly

	db, err := database.NewDB(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return storage.NewRepository(db), func() { db.Close() }, nil
}
