package config

import "path/filepath"

// Output artifact names, also used verbatim in the build record.
const (
	BundleName    = "notnot-content-bundle.js"
	MinifiedName  = "notnot-content.min.js"
	BuildInfoName = "build-info.json"
)

// Layout provides computed paths for the project and output directory.
// Relative paths are kept relative so they read well in logs and in the
// build record.
type Layout struct {
	Root   string
	OutDir string
}

// NewLayout places outDir under root unless outDir is absolute.
func NewLayout(root, outDir string) Layout {
	root = filepath.Clean(root)
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	return Layout{Root: root, OutDir: filepath.Clean(outDir)}
}

func (l Layout) ContentScripts() string { return filepath.Join(l.Root, "content-scripts") }
func (l Layout) ModuleDir() string      { return filepath.Join(l.ContentScripts(), "modules") }
func (l Layout) Entry() string          { return filepath.Join(l.ContentScripts(), "main.js") }

// Original is the unbundled content script, used only for size comparison.
func (l Layout) Original() string { return filepath.Join(l.ContentScripts(), "notnot-content.js") }

func (l Layout) Bundle() string    { return filepath.Join(l.OutDir, BundleName) }
func (l Layout) Minified() string  { return filepath.Join(l.OutDir, MinifiedName) }
func (l Layout) BuildInfo() string { return filepath.Join(l.OutDir, BuildInfoName) }
