package app

import (
	"fmt"

	"github.com/closetscout/backend/config"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/closetscout/backend/internal/infrastructure/source"
	"github.com/closetscout/backend/internal/storedir"
	"github.com/closetscout/backend/internal/usecase"
	"go.uber.org/zap"
)

// App is the wired search stack shared by the server and the CLI
type App struct {
	Directory *storedir.Directory
	Search    *usecase.SearchService
}

// New builds the store directory, outbound client, adapters and search service
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	directory, err := storedir.Load(cfg.Upstream.MaxResults, cfg.Stores)
	if err != nil {
		return nil, fmt.Errorf("load store directory: %w", err)
	}

	client := fetch.NewClient(fetch.Options{
		Timeout:          cfg.Upstream.Timeout,
		UserAgents:       cfg.Upstream.UserAgents,
		CloudflareBypass: cfg.Upstream.CloudflareBypass,
	}, log)

	registry := source.NewRegistry(client, log)

	return &App{
		Directory: directory,
		Search:    usecase.NewSearchService(directory, registry, log),
	}, nil
}
