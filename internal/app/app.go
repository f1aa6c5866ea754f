package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	chaineth "cow-registry/internal/adapters/chain/ethereum"
	chainmem "cow-registry/internal/adapters/chain/memory"
	"cow-registry/internal/adapters/contentstore/ipfs"
	contentmem "cow-registry/internal/adapters/contentstore/memory"
	mem "cow-registry/internal/adapters/storage/memory"
	pg "cow-registry/internal/adapters/storage/postgres"
	"cow-registry/internal/domain/activity"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/domain/status"
	"cow-registry/internal/middleware"
	"cow-registry/internal/platform/config"
	"cow-registry/internal/platform/httpclient"
	"cow-registry/internal/platform/logger"
	"cow-registry/internal/platform/metrics"
	"cow-registry/internal/ports/chain"
	"cow-registry/internal/ports/contentstore"
	"cow-registry/internal/view"
)

type Options struct {
	Logger logger.Logger

	// Opcional: si viene, el journal va a Postgres. Si no, DB_DSN; si tampoco, in-memory.
	DB *sql.DB

	// Overrides para tests; nil = según config.
	Registry cows.Registry
	Accounts chain.AccountProvider
	Content  contentstore.Store
}

// App es el contexto de la aplicación: todo lo que los handlers y el CLI necesitan, ya cableado.
type App struct {
	Config  config.Config
	Log     logger.Logger
	Metrics *metrics.Metrics
	Status  *status.Board

	Registry cows.Registry
	Accounts chain.AccountProvider
	Content  contentstore.Store
	Activity *activity.Service

	Renderer *view.Renderer
	Display  *view.Display
	Sync     *cows.Synchronizer
	Commands *cows.Commands

	provider *chaineth.Provider
	db       *sql.DB
	ownsDB   bool
}

// New arma la aplicación. Un fallo de provider o de binding no corta el arranque:
// queda en el canal de estado y cada operación de contrato devuelve ese mismo error.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.App,
		})
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics.New(),
		Status:   status.NewBoard(),
		Renderer: renderer,
	}

	a.Registry, a.Accounts = opts.Registry, opts.Accounts
	if a.Registry == nil || a.Accounts == nil {
		reg, accounts := a.bindChain(ctx)
		if a.Registry == nil {
			a.Registry = reg
		}
		if a.Accounts == nil {
			a.Accounts = accounts
		}
	}
	// X-Debug-Account (modo dev) gana sobre el provider.
	a.Accounts = middleware.Accounts{Fallback: a.Accounts}

	a.Content = opts.Content
	if a.Content == nil {
		a.Content = a.contentStore()
	}

	repo, err := a.activityRepo(ctx, opts.DB)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Activity = activity.NewService(repo)

	a.Display = view.NewDisplay(renderer, log)
	a.Sync = cows.NewSynchronizer(a.Registry, a.Display, a.Status, cows.SyncOptions{
		GatewayURL:  cfg.Content.GatewayURL,
		Concurrency: cfg.Sync.Concurrency,
		Logger:      log.With(map[string]any{"component": "sync"}),
		Metrics:     a.Metrics,
	})
	a.Commands = cows.NewCommands(cows.CommandDeps{
		Writer:   a.Registry,
		Accounts: a.Accounts,
		Content:  a.Content,
		Sync:     a.Sync,
		Status:   a.Status,
		Journal:  a.Activity,
		Logger:   log.With(map[string]any{"component": "commands"}),
		Metrics:  a.Metrics,
	})

	return a, nil
}

func (a *App) bindChain(ctx context.Context) (cows.Registry, chain.AccountProvider) {
	cfg := a.Config.Chain

	if cfg.Backend == config.BackendMemory {
		accounts := cfg.Accounts
		if len(accounts) == 0 {
			accounts = []string{chainmem.DevAccount}
		}
		a.Log.Info("chain backend: memory", map[string]any{"accounts": len(accounts)})
		return chainmem.NewRegistry(accounts[0]), chainmem.NewAccounts(accounts...)
	}

	p, err := chaineth.ResolveProvider(ctx, chaineth.ProviderConfig{
		InjectedURL: cfg.ProviderURL,
		DefaultURL:  cfg.DefaultURL,
	})
	if err != nil {
		return a.unbound(err), failingAccounts{err: err}
	}
	a.provider = p
	a.Log.Info("chain provider", map[string]any{"url": p.URL, "injected": p.Injected})

	accounts := chaineth.NewAccounts(p)

	art, err := chaineth.LoadArtifact(ctx, cfg.ArtifactSource, cfg.ContractName, httpclient.New(0))
	if err != nil {
		return a.unbound(err), accounts
	}

	c, err := chaineth.Bind(p, art, chaineth.BindOptions{
		ReceiptPoll: cfg.ReceiptPoll,
		Logger:      a.Log.With(map[string]any{"component": "contract"}),
	})
	if err != nil {
		return a.unbound(err), accounts
	}
	return c, accounts
}

func (a *App) unbound(err error) cows.Registry {
	a.Status.Fail(err)
	a.Log.Error("contract binding failed", map[string]any{"err": err})
	return cows.Unbound(err)
}

func (a *App) contentStore() contentstore.Store {
	if a.Config.Content.Backend == config.BackendMemory {
		return contentmem.NewStore()
	}
	return ipfs.New(a.Config.Content.APIURL, nil, a.Log)
}

func (a *App) activityRepo(ctx context.Context, db *sql.DB) (activity.Repository, error) {
	if db == nil && a.Config.DBDSN != "" {
		opened, err := pg.Open(a.Config.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		db, a.ownsDB = opened, true
	}
	if db == nil {
		return mem.NewActivityRepo(), nil
	}

	a.db = db
	if err := pg.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return pg.NewActivityRepo(db), nil
}

func (a *App) Close() error {
	var errs []error
	if a.provider != nil {
		a.provider.Close()
	}
	if a.ownsDB && a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// failingAccounts se usa cuando ni siquiera hay provider.
type failingAccounts struct {
	err error
}

func (f failingAccounts) ActiveAccount(context.Context) (string, error) {
	return "", f.err
}
