// Package app implements the application layer for lineage.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lineage/internal/adapters/watcher" //nolint:depguard // Debouncer is shared with watch mode
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/internal/engine/freeze"
	"go.trai.ch/lineage/internal/engine/projector"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.SchemaLoader
	logger    ports.Logger
	tracer    ports.Tracer
	projector *projector.Projector
	emitters  ports.EmitterRegistry
	store     ports.SnapshotStore
	watcher   ports.Watcher

	now      func() time.Time
	getwd    func() (string, error)
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.SchemaLoader,
	log ports.Logger,
	tracer ports.Tracer,
	proj *projector.Projector,
	emitters ports.EmitterRegistry,
	store ports.SnapshotStore,
	w ports.Watcher,
) *App {
	return &App{
		loader:    loader,
		logger:    log,
		tracer:    tracer,
		projector: proj,
		emitters:  emitters,
		store:     store,
		watcher:   w,
		now:       time.Now,
		getwd:     os.Getwd,
		debounce:  watcher.DefaultDebounceWindow,
	}
}

// WithClock replaces the clock used to timestamp store records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithWorkingDir fixes the directory schema discovery starts from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// WithDebounce sets the quiet period watch mode waits for before re-projecting.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// File is the schema document. When empty it is discovered from the working directory.
	File string
}

// Check loads and freezes the schema, logging every diagnostic.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	loaded, err := a.load(ctx, opts.File)
	if err != nil {
		return err
	}

	b := loaded.bundle
	a.logger.Info(fmt.Sprintf("%s is valid: %d elements across %d versions",
		loaded.path, b.Graph().Len(), b.Registry().Len()))
	return nil
}

// loaded is a frozen schema together with where it came from.
type loaded struct {
	path   string
	root   string
	bundle *freeze.Bundle
}

func (a *App) resolvePath(file string) (string, error) {
	if file != "" {
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve schema path"), "path", file)
		}
		return abs, nil
	}

	cwd, err := a.getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine working directory")
	}
	return a.loader.Discover(cwd)
}

func (a *App) load(ctx context.Context, file string) (*loaded, error) {
	path, err := a.resolvePath(file)
	if err != nil {
		return nil, err
	}

	schema, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load schema")
	}

	_, span := a.tracer.Start(ctx, "freeze", ports.WithAttribute("path", path))
	defer span.End()

	b, err := freeze.FreezeSchema(schema)
	if err != nil {
		span.RecordError(err)
		var diags *domain.DiagnosticsError
		if errors.As(err, &diags) {
			span.SetAttribute("diagnostics", diags.Len())
			for _, d := range diags.Diagnostics {
				a.logger.Error(d)
			}
		}
		return nil, zerr.With(zerr.Wrap(err, "schema check failed"), "path", path)
	}

	span.SetAttribute("elements", b.Graph().Len())
	span.SetAttribute("versions", b.Versions())

	return &loaded{
		path:   path,
		root:   filepath.Dir(path),
		bundle: b,
	}, nil
}
