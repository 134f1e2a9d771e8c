package bundle

import (
	"path/filepath"

	"github.com/notnot-ext/bundleopt/kit/fsutil"
)

// DirLoader loads modules from dir/<name>.js.
func DirLoader(dir string) UnitLoader {
	return func(name string) (string, bool) {
		return fsutil.ReadTextIfExists(filepath.Join(dir, name+".js"))
	}
}

// FileLoader loads the entry script from path.
func FileLoader(path string) EntryLoader {
	return func() (string, bool) {
		return fsutil.ReadTextIfExists(path)
	}
}
