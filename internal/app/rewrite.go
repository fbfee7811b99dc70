package app

import (
	"bytes"
	"context"
	"io"
	"os"

	"go.trai.ch/bust/internal/adapters/markup"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/ui/style"
	"go.trai.ch/zerr"
)

// RewriteOptions configures Rewrite.
type RewriteOptions struct {
	Options
	// Write replaces each file in place instead of printing it.
	Write bool
}

// Rewrite versions the marked asset references of each HTML file.
func (a *App) Rewrite(ctx context.Context, files []string, opts RewriteOptions) error {
	if len(files) == 0 {
		return domain.ErrNoPathsSpecified
	}

	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.close(ctx)
	}()

	rewriter := markup.NewRewriter(s.versioner, a.logger)
	for _, file := range files {
		if err := a.rewriteFile(ctx, rewriter, file, s.cfg.PathBase, opts.Write); err != nil {
			return zerr.With(err, "file", file)
		}
	}
	return nil
}

func (a *App) rewriteFile(ctx context.Context, rewriter *markup.Rewriter, file, pathBase string, write bool) error {
	content, err := os.ReadFile(file) //nolint:gosec // Files are named by the user on the command line
	if err != nil {
		return zerr.Wrap(err, "failed to read document")
	}

	var dst io.Writer = a.stdout
	var out bytes.Buffer
	if write {
		dst = &out
	}
	if err := rewriter.Rewrite(ctx, dst, bytes.NewReader(content), pathBase); err != nil {
		return err
	}
	if !write {
		return nil
	}

	if bytes.Equal(out.Bytes(), content) {
		return nil
	}
	info, err := os.Stat(file)
	if err != nil {
		return zerr.Wrap(err, "failed to stat document")
	}
	if err := os.WriteFile(file, out.Bytes(), info.Mode().Perm()); err != nil {
		return zerr.Wrap(err, "failed to write document")
	}
	a.logger.Info(style.Check + " rewrote " + file)
	return nil
}
