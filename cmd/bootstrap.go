package cmd

import (
	"fmt"

	"table-importer/core/config"
	"table-importer/core/database"
	"table-importer/core/logger"
	"table-importer/core/storage"
	"table-importer/feature/importer"
	"table-importer/feature/manifest"

	"go.uber.org/zap"
)

// session bundles the services a command needs.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	tables   *importer.Service
	manifest *manifest.Service
}

// bootstrapOptions selects which optional backends must be available.
type bootstrapOptions struct {
	requireStorage  bool
	requireDatabase bool
}

func bootstrap(opts bootstrapOptions) (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.Importer.DataDir = dataDirFlag
	}
	if skipMalformed {
		cfg.Importer.SkipMalformed = true
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Invalid patterns or templates fail before any file is scanned
	settings, err := cfg.Importer.Compile()
	if err != nil {
		return nil, err
	}

	resolver := importer.NewResolver(settings, importer.DirWalker{}, importer.NewFileSheetReader(settings.CSVSheetName), logg)
	tables := importer.NewService(resolver, cfg.Importer.DataDir, cfg.Importer.CacheTTL, logg)

	var publisher *manifest.Publisher
	if opts.requireStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		publisher = manifest.NewPublisher(client, cfg.Storage, cfg.Manifest, logg)
	}

	store, err := openStore(cfg.Database, opts.requireDatabase, logg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		logger:   logg,
		tables:   tables,
		manifest: manifest.NewService(tables, publisher, store, cfg.Manifest, logg),
	}, nil
}

// openStore connects to the history database when it is required or enabled
// in config. Otherwise no connection is made and no sqlite file is created.
func openStore(cfg database.Config, required bool, logg *zap.Logger) (*manifest.Store, error) {
	if !required && !cfg.Enabled {
		return nil, nil
	}

	// Connect to Database (Optional unless history is requested)
	conn, err := database.Connect(cfg)
	if err != nil {
		if required {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil, nil
	}

	store := manifest.NewStore(conn)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
