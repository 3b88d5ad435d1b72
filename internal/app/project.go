package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProjectOptions configuration for the Project and Watch methods.
type ProjectOptions struct {
	// File is the schema document. When empty it is discovered from the working directory.
	File string
	// Versions limits projection to these labels. Empty means every declared version.
	Versions []string
	// Out is the output directory. Empty means snapshots/ next to the schema document.
	Out string
	// Format selects the emitter, "json" or "yaml".
	Format string
	// NoCache emits every snapshot even when its fingerprint is unchanged.
	NoCache bool
	// Workers bounds concurrent projections. Zero keeps the default.
	Workers int
}

// ProjectResult reports what a Project call did.
type ProjectResult struct {
	// Emitted lists the written artifact paths in declaration order.
	Emitted []string
	// Unchanged lists the labels whose artifact was already up to date.
	Unchanged []string
}

// Project freezes the schema, projects the requested versions and emits one artifact per version.
func (a *App) Project(ctx context.Context, opts ProjectOptions) (*ProjectResult, error) {
	format := opts.Format
	if format == "" {
		format = "json"
	}
	emitter, err := a.emitters.Lookup(format)
	if err != nil {
		return nil, err
	}

	loaded, err := a.load(ctx, opts.File)
	if err != nil {
		return nil, err
	}

	outDir, err := a.outputDir(loaded.root, opts.Out)
	if err != nil {
		return nil, err
	}

	snapshots, err := a.projector.WithWorkers(opts.Workers).ProjectAll(ctx, loaded.bundle, opts.Versions)
	if err != nil {
		return nil, zerr.Wrap(err, "projection failed")
	}

	result := &ProjectResult{}
	for _, snap := range snapshots {
		label := snap.Version().Label()
		fingerprint := snap.Fingerprint()
		artifact := filepath.Join(outDir, domain.SnapshotFileName(label, emitter.Format()))

		if !opts.NoCache && a.upToDate(loaded.root, label, fingerprint, artifact) {
			result.Unchanged = append(result.Unchanged, label)
			continue
		}

		path, err := emitter.Emit(outDir, snap)
		if err != nil {
			return nil, zerr.With(err, "version", label)
		}
		result.Emitted = append(result.Emitted, path)

		record := domain.SnapshotRecord{
			Label:       label,
			Fingerprint: fingerprint,
			Elements:    snap.Len(),
			Artifact:    path,
			Timestamp:   a.now().UTC(),
		}
		if err := a.store.Put(loaded.root, record, snap); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to record snapshot %s: %v", label, err))
		}
	}

	a.logger.Info(fmt.Sprintf("emitted %d of %d snapshots to %s", len(result.Emitted), len(snapshots), outDir))
	return result, nil
}

// upToDate reports whether the last emission for label has the same
// fingerprint, its content is in the store and its artifact is still on disk.
// Store failures count as stale.
func (a *App) upToDate(root, label, fingerprint, artifact string) bool {
	rec, err := a.store.Get(root, label)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("snapshot store unavailable, emitting %s: %v", label, err))
		return false
	}
	if rec == nil || rec.Fingerprint != fingerprint || rec.Artifact != artifact {
		return false
	}
	if !a.store.Has(root, fingerprint) {
		return false
	}
	_, err = os.Stat(artifact)
	return err == nil
}

func (a *App) outputDir(root, out string) (string, error) {
	if out == "" {
		return filepath.Join(root, domain.DefaultOutputDir), nil
	}
	if filepath.IsAbs(out) {
		return filepath.Clean(out), nil
	}

	cwd, err := a.getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine working directory")
	}
	return filepath.Join(cwd, out), nil
}

