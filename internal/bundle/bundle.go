// Package bundle concatenates the content-script modules into a single
// self-guarding script.
//
// Modules are plain ES module files. Their import lines and export keywords
// are stripped textually so the bodies can share one function scope. The
// entry script contributes only the code from InitMarker onward.
package bundle

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Modules is the fixed load order of the content-script modules.
var Modules = []string{
	"constants",
	"utils",
	"storage-manager",
	"area-selector",
	"capture-handler",
	"sidebar-ui",
	"overlay-injector",
	"video-detector",
}

const (
	Title        = "NotNot Chrome Extension - Optimized Bundle"
	GuardCheck   = "if (window.notnotContentScriptLoaded) return;"
	GuardSet     = "window.notnotContentScriptLoaded = true;"
	InitMarker   = "// Initialize video detector"
	TimeLayout   = "2006-01-02T15:04:05.000000"
	ModulePrefix = "// Module: "
)

var (
	importLineRe  = regexp.MustCompile(`(?m)^import\s+.*$`)
	exportKwRe    = regexp.MustCompile(`(?m)^export\s+`)
	exportBlockRe = regexp.MustCompile(`export\s*\{[^}]*\}`)
)

// UnitLoader returns the source of the named module, or false if it is
// unavailable.
type UnitLoader func(name string) (string, bool)

// EntryLoader returns the source of the entry script, or false if it is
// unavailable.
type EntryLoader func() (string, bool)

// Unit is one module that made it into a bundle.
type Unit struct {
	Name   string
	Index  int
	Source string
}

type Options struct {
	// Now stamps the header. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Assemble builds the bundle. Missing modules and a missing entry script
// only make the output shorter; Assemble never fails.
func Assemble(names []string, unit UnitLoader, entry EntryLoader, opts ...Options) string {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var sb strings.Builder
	writeHeader(&sb, o.Now())

	for _, u := range LoadUnits(names, unit, o.Logger) {
		sb.WriteString(ModulePrefix)
		sb.WriteString(u.Name)
		sb.WriteByte('\n')
		sb.WriteString(CleanUnit(u.Source))
		sb.WriteString("\n\n")
	}

	if src, ok := entry(); ok {
		sb.WriteString("// Initialize\n")
		sb.WriteString(EntryTail(src))
	} else {
		o.Logger.Debug("entry script unavailable, bundle has no init tail")
	}

	sb.WriteString("\n})();")
	return sb.String()
}

// LoadUnits resolves names in order, dropping the ones the loader cannot
// provide.
func LoadUnits(names []string, load UnitLoader, log *slog.Logger) []Unit {
	units := make([]Unit, 0, len(names))
	for i, name := range names {
		src, ok := load(name)
		if !ok {
			if log != nil {
				log.Debug("module unavailable, skipping", "module", name)
			}
			continue
		}
		units = append(units, Unit{Name: name, Index: i, Source: src})
	}
	return units
}

func writeHeader(sb *strings.Builder, now time.Time) {
	sb.WriteString("// " + Title + "\n")
	sb.WriteString("// Generated: " + now.Format(TimeLayout) + "\n")
	sb.WriteString("(function() {\n")
	sb.WriteString("'use strict';\n\n")
	sb.WriteString(GuardCheck + "\n")
	sb.WriteString(GuardSet + "\n\n")
}

// StripImports blanks every line that starts with an import declaration.
func StripImports(src string) string {
	return importLineRe.ReplaceAllString(src, "")
}

// CleanUnit strips import lines, leading export keywords and export lists.
func CleanUnit(src string) string {
	src = StripImports(src)
	src = exportKwRe.ReplaceAllString(src, "")
	return exportBlockRe.ReplaceAllString(src, "")
}

// EntryTail strips import lines from the entry script and cuts everything
// before InitMarker. Without the marker the whole script is kept.
func EntryTail(src string) string {
	src = StripImports(src)
	if i := strings.Index(src, InitMarker); i > -1 {
		return src[i:]
	}
	return src
}
