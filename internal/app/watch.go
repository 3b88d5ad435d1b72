package app

import (
	"context"
	"fmt"

	"go.trai.ch/lineage/internal/adapters/watcher" //nolint:depguard // Debouncer is shared with watch mode
	"go.trai.ch/zerr"
)

// Watch starts watching the schema document, projects once, then
// re-projects on every change until ctx is cancelled. Failed runs are
// logged and watching continues.
func (a *App) Watch(ctx context.Context, opts ProjectOptions) error {
	path, err := a.resolvePath(opts.File)
	if err != nil {
		return err
	}
	opts.File = path

	if err := a.watcher.Start(ctx, path); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info(fmt.Sprintf("watching %s for changes", path))

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	go func() {
		for ev := range a.watcher.Events() {
			debouncer.Add(ev.Path)
		}
	}()

	a.projectAndLog(ctx, opts)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			a.logger.Info("schema changed, projecting")
			a.projectAndLog(ctx, opts)
		}
	}
}

func (a *App) projectAndLog(ctx context.Context, opts ProjectOptions) {
	if _, err := a.Project(ctx, opts); err != nil {
		a.logger.Error(err)
	}
}
