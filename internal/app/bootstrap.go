package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/storage"
	"github.com/alexanderramin/syllabus/internal/syncer"
)

// LoadCatalog reads the catalog at path, or the embedded one when path
// is empty. A schema mismatch is returned as catalog.ErrSchemaMismatch.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// OpenFromConfig wires a session from cfg: catalog, cache database,
// remote store and ownership. With offline set, or with no repository
// configured, the session is local-only and editable. The returned close
// function stops syncing, flushes and closes the database.
func OpenFromConfig(ctx context.Context, cfg config.Config, offline bool, logw io.Writer) (*App, func(context.Context), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	cat, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}

	var (
		observer     Observer         = NoopObserver{}
		syncObserver syncer.Observer  = syncer.NoopObserver{}
		reqObserver  storage.Observer = storage.NoopObserver{}
	)
	if cfg.LogEvents {
		observer = NewLogObserver(logw)
		syncObserver = syncer.NewLogObserver(logw)
		reqObserver = storage.NewLogObserver(logw)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}
	cache := storage.NewCacheStore(database, db.NewSQLiteUnitOfWork(database))

	var warnings []string
	for _, w := range catalog.Validate(cat) {
		warnings = append(warnings, "catalog: "+w)
	}

	remote, owner, note := resolveRemote(ctx, cfg.GitHub, offline, reqObserver)
	if note != "" {
		warnings = append(warnings, note)
	}

	a, err := Open(ctx, Options{
		Catalog:      cat,
		Remote:       remote,
		Cache:        cache,
		Owner:        owner,
		Theme:        cfg.Theme,
		AutoSync:     cfg.AutoSync && owner,
		Interval:     cfg.SyncInterval,
		SyncOnExit:   cfg.SyncOnExit,
		Observer:     observer,
		SyncObserver: syncObserver,
		Warnings:     warnings,
	})
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	closeFn := func(ctx context.Context) {
		a.Close(ctx)
		database.Close()
	}
	return a, closeFn, nil
}

// resolveRemote picks the store and decides ownership. A token whose
// owner cannot be checked because the network is down is trusted, so
// edits keep working offline; a push with a foreign token still fails.
func resolveRemote(ctx context.Context, cfg config.GitHubConfig, offline bool, obs storage.Observer) (storage.Store, bool, string) {
	if offline || !cfg.Configured() {
		return nil, true, ""
	}
	if cfg.Token == "" {
		return storage.NewPublicStore(cfg, obs), false, ""
	}

	gh := storage.NewGitHubStore(cfg, obs)
	owner, err := gh.IsOwner(ctx)
	switch {
	case err == nil && owner:
		return gh, true, ""
	case err == nil:
		return storage.NewPublicStore(cfg, obs), false,
			fmt.Sprintf("token does not belong to %s; opening read-only", cfg.Owner)
	case errors.Is(err, storage.ErrUnavailable):
		return gh, true, "could not verify token owner: " + err.Error()
	default:
		return storage.NewPublicStore(cfg, obs), false, "could not verify token owner: " + err.Error()
	}
}
