// notnot-optimize bundles the NotNot content-script modules into one
// self-guarding script and writes a minified copy next to it.
package main

import (
	"os"

	"github.com/notnot-ext/bundleopt/cmd/notnot-optimize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
