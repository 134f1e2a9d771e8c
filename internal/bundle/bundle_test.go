package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
}

func mapLoader(units map[string]string) UnitLoader {
	return func(name string) (string, bool) {
		src, ok := units[name]
		return src, ok
	}
}

func entryOf(src string, ok bool) EntryLoader {
	return func() (string, bool) { return src, ok }
}

func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestCleanUnit(t *testing.T) {
	src := strings.Join([]string{
		"import { CONSTANTS } from './constants.js';",
		"import utils from './utils.js';",
		"export class StorageManager {",
		"  get() { return 1; }",
		"}",
		"export const A = 1;",
		"export { StorageManager, A };",
		"  import notAtLineStart;",
	}, "\n")

	got := CleanUnit(src)

	assert.NotContains(t, got, "from './constants.js'")
	assert.NotContains(t, got, "from './utils.js'")
	assert.Contains(t, got, "class StorageManager {")
	assert.Contains(t, got, "\nconst A = 1;")
	assert.NotContains(t, got, "export")
	assert.Contains(t, got, "\n{ StorageManager, A };")
	assert.Contains(t, got, "  import notAtLineStart;", "import is only stripped at line start")
	assert.True(t, strings.HasPrefix(got, "\n\nclass"), "import lines are blanked, not removed: %q", got)
}

func TestCleanUnitExportLists(t *testing.T) {
	got := CleanUnit("const a = 1; export { a,\n  b };\nexport{ c }\n")
	assert.Equal(t, "const a = 1; ;\n\n", got)

	// The leading keyword goes first, so a line-start list keeps its braces.
	assert.Equal(t, "{ Sidebar };", CleanUnit("export { Sidebar };"))
}

func TestEntryTail(t *testing.T) {
	t.Run("cuts before marker", func(t *testing.T) {
		src := "import { X } from './x.js';\nsetup();\n  // Initialize video detector\nconst d = new X();\n"
		assert.Equal(t, "// Initialize video detector\nconst d = new X();\n", EntryTail(src))
	})

	t.Run("keeps whole entry without marker", func(t *testing.T) {
		src := "import { X } from './x.js';\nrun();\n"
		assert.Equal(t, "\nrun();\n", EntryTail(src))
	})
}

func TestAssembleOrderAndGuard(t *testing.T) {
	units := map[string]string{
		"constants": "export const CONSTANTS = {};",
		"utils":     "import { CONSTANTS } from './constants.js';\nexport const utils = {};",
		"sidebar":   "class Sidebar {}\nexport { Sidebar };",
	}
	names := []string{"constants", "utils", "sidebar"}

	got := Assemble(names, mapLoader(units), entryOf("", false), Options{Now: fixedNow})

	assert.Equal(t, 1, strings.Count(got, GuardCheck))
	assert.True(t, strings.HasPrefix(got, "// "+Title+"\n// Generated: 2025-03-14T09:26:53.589793\n(function() {\n'use strict';\n\n"+GuardCheck+"\n"+GuardSet+"\n\n"))
	assert.True(t, strings.HasSuffix(got, "\n})();"))

	last := -1
	for _, name := range names {
		marker := ModulePrefix + name + "\n"
		idx := strings.Index(got, marker)
		require.Greater(t, idx, last, "marker for %s out of order", name)
		last = idx
	}

	assert.Contains(t, got, ModulePrefix+"constants\nconst CONSTANTS = {};\n\n")
	assert.Contains(t, got, ModulePrefix+"utils\n\nconst utils = {};\n\n")
	assert.Contains(t, got, ModulePrefix+"sidebar\nclass Sidebar {}\n{ Sidebar };\n\n")
	assert.NotContains(t, got, "// Initialize\n")
}

func TestAssembleSkipsMissingUnit(t *testing.T) {
	units := map[string]string{
		"constants":  "const A = 1;",
		"sidebar-ui": "const C = 3;",
	}
	names := []string{"constants", "utils", "sidebar-ui"}

	var got string
	require.NotPanics(t, func() {
		got = Assemble(names, mapLoader(units), entryOf("", false))
	})

	assert.NotContains(t, got, ModulePrefix+"utils")
	assert.Contains(t, got, ModulePrefix+"constants")
	assert.Contains(t, got, ModulePrefix+"sidebar-ui")
	assert.Equal(t, 1, strings.Count(got, GuardCheck))
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(Modules, mapLoader(nil), entryOf("", false), Options{Now: fixedNow})
	want := "// " + Title + "\n// Generated: 2025-03-14T09:26:53.589793\n(function() {\n'use strict';\n\n" +
		GuardCheck + "\n" + GuardSet + "\n\n\n})();"
	assert.Equal(t, want, got)
}

func TestAssembleEntryTail(t *testing.T) {
	entry := "import { VideoDetector } from './modules/video-detector.js';\n" +
		"if (window.notnotContentScriptLoaded) {\n} else {\n" +
		"  // Initialize video detector\n  const videoDetector = new VideoDetector();\n}\n"

	got := Assemble(nil, mapLoader(nil), entryOf(entry, true), Options{Now: fixedNow})

	assert.Contains(t, got, "// Initialize\n// Initialize video detector\n  const videoDetector = new VideoDetector();\n}\n\n})();")
	assert.NotContains(t, got, "import {")
	assert.Equal(t, 1, strings.Count(got, GuardCheck))
}

func TestLoadUnitsKeepsOrdinal(t *testing.T) {
	units := LoadUnits([]string{"a", "b", "c"}, mapLoader(map[string]string{"a": "1", "c": "3"}), nil)
	require.Len(t, units, 2)
	assert.Equal(t, Unit{Name: "a", Index: 0, Source: "1"}, units[0])
	assert.Equal(t, Unit{Name: "c", Index: 2, Source: "3"}, units[1])
}

func TestDirLoaders(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"modules/constants.js": "export const A = 1;\n",
		"main.js":              "// Initialize video detector\ninit();\n",
	})

	load := DirLoader(filepath.Join(dir, "modules"))
	src, ok := load("constants")
	assert.True(t, ok)
	assert.Equal(t, "export const A = 1;\n", src)

	_, ok = load("utils")
	assert.False(t, ok)

	got := Assemble(Modules, load, FileLoader(filepath.Join(dir, "main.js")))
	assert.Contains(t, got, ModulePrefix+"constants\nconst A = 1;\n")
	assert.Contains(t, got, "// Initialize\n// Initialize video detector\ninit();\n")

	_, ok = FileLoader(filepath.Join(dir, "nope.js"))()
	assert.False(t, ok)
}
