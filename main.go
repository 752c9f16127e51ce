// main is the entrypoint for the compass CLI.
package main

import (
	"github.com/compasshq/compass/cmd"
	"github.com/compasshq/compass/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		internal.FatalError("Command failed", err)
	}
}
