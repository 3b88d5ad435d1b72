package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/engine/projector"
)

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	// File is the schema document. When empty it is discovered from the working directory.
	File string
	// Version is the label to project.
	Version string
}

// Show writes the snapshot tree of one version to w.
func (a *App) Show(ctx context.Context, w io.Writer, opts ShowOptions) error {
	loaded, err := a.load(ctx, opts.File)
	if err != nil {
		return err
	}

	snap, err := projector.Project(loaded.bundle, opts.Version)
	if err != nil {
		return err
	}

	return writeTree(w, snap)
}

func writeTree(w io.Writer, snap *domain.Snapshot) error {
	if _, err := fmt.Fprintf(w, "version %s: %d elements, fingerprint %s\n",
		snap.Version().Label(), snap.Len(), snap.Fingerprint()); err != nil {
		return err
	}

	depth := make(map[domain.ElementID]int, snap.Len())
	for node := range snap.Walk() {
		if node.Parent != domain.NoElement {
			depth[node.ID] = depth[node.Parent] + 1
		}

		line := strings.Repeat("  ", depth[node.ID]) + node.Name.String() + " (" + node.Kind.String() + ")"
		if len(node.References) > 0 {
			targets := make([]string, len(node.References))
			for i, ref := range node.References {
				targets[i] = snap.Path(ref)
			}
			line += " -> " + strings.Join(targets, ", ")
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
