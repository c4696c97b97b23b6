package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/optsmigrate/internal/ctxlog"
)

// ErrPendingChanges is returned by a check run that found documents still
// carrying annotations.
var ErrPendingChanges = errors.New("documents need migration")

// Summary is the outcome of one run.
type Summary struct {
	Scanned  int
	Modified []string // changed, or would change in check mode
	Failed   []string
}

// Run migrates every document in lexicographic order. A failing document is
// logged and left untouched and the run continues; Run then returns an error
// so the caller can exit non-zero.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	names, err := a.store.List(ctx)
	if err != nil {
		return nil, err
	}

	verb := "Modified"
	if a.check {
		verb = "Needs migration"
	}

	summary := &Summary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Scanned++

		changed, err := a.process(ctx, name)
		if err != nil {
			a.logger.Error("Document skipped.", "document", name, "error", err)
			summary.Failed = append(summary.Failed, name)
			continue
		}
		if changed {
			fmt.Fprintf(a.outW, "  %s: %s\n", verb, name)
			summary.Modified = append(summary.Modified, name)
		}
	}

	if a.check {
		fmt.Fprintf(a.outW, "\nDone. %d files need migration.\n", len(summary.Modified))
	} else {
		fmt.Fprintf(a.outW, "\nDone. Modified %d files.\n", len(summary.Modified))
	}
	a.logger.Info("Run finished.", "scanned", summary.Scanned, "modified", len(summary.Modified), "failed", len(summary.Failed))

	if len(summary.Failed) > 0 {
		return summary, fmt.Errorf("%d of %d documents failed", len(summary.Failed), summary.Scanned)
	}
	if a.check && len(summary.Modified) > 0 {
		return summary, fmt.Errorf("%d documents: %w", len(summary.Modified), ErrPendingChanges)
	}
	return summary, nil
}

// process rewrites one document and persists it when it changed.
func (a *App) process(ctx context.Context, name string) (bool, error) {
	data, err := a.store.Load(ctx, name)
	if err != nil {
		return false, err
	}

	res, err := a.rewriter.Rewrite(ctx, name, string(data))
	if err != nil {
		return false, err
	}
	if !res.Changed {
		return false, nil
	}
	a.logger.Debug("Document migrated.", "document", name, "layout", res.Layout)

	if a.check {
		return true, nil
	}
	if err := a.store.Save(ctx, name, []byte(res.Output)); err != nil {
		return false, err
	}
	return true, nil
}
