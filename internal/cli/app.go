package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/config"
	"github.com/khanglvm/portfolio-mcp/internal/dataset"
	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/query"
	"github.com/khanglvm/portfolio-mcp/internal/search"
	"github.com/khanglvm/portfolio-mcp/internal/storage"
	"github.com/khanglvm/portfolio-mcp/internal/tools"
)

// app is the object graph behind every command: one store, one engine and
// one registry for the life of the process.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	store    *dataset.Store
	engine   *query.Engine
	indexer  *search.Indexer
	history  *storage.SQLiteStorage
	registry *tools.Registry
}

// newApp loads the configuration and wires the components. Logs go to
// logOut. A history database that fails to open is logged and skipped.
func (o *rootOptions) newApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load(o.v)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logOut, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	store := dataset.NewStore(dataset.Source{
		ProjectsPath: cfg.Data.Projects,
		BlogsPath:    cfg.Data.Blogs,
	}, logger)
	engine := query.NewEngine(store, logger)

	indexer, err := search.NewIndexer(store, logger)
	if err != nil {
		return nil, err
	}

	history := storage.NewStorage(cfg.HistoryPath(), logger)
	if err := history.Init(); err != nil {
		logger.Warn("Continuing without call history", "err", err)
	}

	regOpts := []tools.Option{
		tools.WithLogger(logger),
		tools.WithSuggester(indexer),
	}
	if history.Enabled() {
		regOpts = append(regOpts, tools.WithRecorder(history))
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		engine:   engine,
		indexer:  indexer,
		history:  history,
		registry: tools.NewRegistry(engine, regOpts...),
	}, nil
}

// Close releases the suggestion index and the history database.
func (a *app) Close() error {
	return errors.Join(a.indexer.Close(), a.history.Close())
}
