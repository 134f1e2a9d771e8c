// Package optimizer runs the bundle-and-minify pipeline once: bundle the
// content-script modules, minify the bundle, write both artifacts and a
// build record.
package optimizer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/notnot-ext/bundleopt/internal/bundle"
	"github.com/notnot-ext/bundleopt/internal/config"
	"github.com/notnot-ext/bundleopt/internal/minify"
	"github.com/notnot-ext/bundleopt/internal/report"
	"github.com/notnot-ext/bundleopt/kit/fsutil"
)

// Runner is the optimizer pipeline bound to a config.
type Runner struct {
	cfg *config.Config
	log *slog.Logger
	now func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, now: time.Now}
}

// Run is shorthand for New(cfg, log).Run().
func Run(cfg *config.Config, log *slog.Logger) (*report.Record, error) {
	return New(cfg, log).Run()
}

// Run performs one pass. Missing inputs only shrink the output; the returned
// error is limited to failures writing into the output directory.
func (r *Runner) Run() (*report.Record, error) {
	start := r.now()
	layout := r.cfg.Layout
	r.log.Info("START optimize", "root", layout.Root, "out", layout.OutDir)

	original, ok := report.StatFile(layout.Original())
	if !ok {
		r.log.Warn("original content script not found", "file", layout.Original())
	}
	r.log.Info("Original file", "size", report.FormatSize(original.Bytes()), "lines", original.Lines)

	code := bundle.Assemble(
		bundle.Modules,
		r.warnMissingUnit(bundle.DirLoader(layout.ModuleDir())),
		r.warnMissingEntry(bundle.FileLoader(layout.Entry())),
		bundle.Options{Now: r.now},
	)

	if err := fsutil.EnsureDir(layout.OutDir); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	if err := fsutil.WriteText(layout.Bundle(), code); err != nil {
		return nil, fmt.Errorf("write bundle: %w", err)
	}
	bundleStats := report.StatText(config.BundleName, code)
	r.log.Info("Bundle created", "size", report.FormatSize(bundleStats.Bytes()), "lines", bundleStats.Lines)

	optimized := minify.Optimize(code)
	if err := fsutil.WriteText(layout.Minified(), optimized); err != nil {
		return nil, fmt.Errorf("write minified bundle: %w", err)
	}
	optimizedStats := report.StatText(config.MinifiedName, optimized)
	r.log.Info("Optimized file", "size", report.FormatSize(optimizedStats.Bytes()), "lines", optimizedStats.Lines)

	rec := report.New(r.now(), original, bundleStats, optimizedStats)
	if ok {
		r.log.Info("Size reduction", "percent", rec.ReductionPercent)
	}

	if err := rec.WriteFile(layout.BuildInfo()); err != nil {
		return nil, fmt.Errorf("write build record: %w", err)
	}
	r.log.Info("Build info saved", "file", layout.BuildInfo())

	r.log.Info("DONE optimize", "use", layout.Minified(), "duration", r.now().Sub(start))
	return rec, nil
}

func (r *Runner) warnMissingUnit(load bundle.UnitLoader) bundle.UnitLoader {
	return func(name string) (string, bool) {
		src, ok := load(name)
		if !ok {
			r.log.Warn("module not found, skipping", "module", name)
		}
		return src, ok
	}
}

func (r *Runner) warnMissingEntry(load bundle.EntryLoader) bundle.EntryLoader {
	return func() (string, bool) {
		src, ok := load()
		if !ok {
			r.log.Warn("entry script not found", "file", r.cfg.Layout.Entry())
		}
		return src, ok
	}
}
