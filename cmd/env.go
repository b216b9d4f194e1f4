package cmd

import (
	"fmt"

	"locale-manager/core/config"
	"locale-manager/core/database"
	"locale-manager/core/logger"
	"locale-manager/core/storage"
	"locale-manager/core/store"
	"locale-manager/feature/localization"

	"go.uber.org/zap"
)

// env is what every localization command needs.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	client  storage.Client
	service *localization.Service
}

// settings converts the localization configuration for the service.
func settings(cfg *config.Config) (localization.Settings, error) {
	targets, err := cfg.Localization.Targets()
	if err != nil {
		return localization.Settings{}, fmt.Errorf("invalid target locales: %w", err)
	}
	return localization.Settings{
		SourceLang:  cfg.Localization.SourceLang,
		Targets:     targets,
		Parallelism: cfg.Localization.Parallelism,
		CacheTTL:    cfg.Localization.CacheTTL(),
		Region:      cfg.Storage.Region,
	}, nil
}

// setup loads the configuration and connects to the database and storage.
// The database is required; its schema is verified but never migrated here.
func setup() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s, err := settings(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	st := store.New(db)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &env{
		cfg:     cfg,
		logger:  logg,
		store:   st,
		client:  client,
		service: localization.NewService(st, client, cfg.Storage.Bucket, logg, s),
	}, nil
}
