package main

import (
	"os"

	"github.com/open-cli-collective/mtext-cli/internal/cmd/root"
	"github.com/open-cli-collective/mtext-cli/internal/log"
	"github.com/open-cli-collective/mtext-cli/internal/view"
)

func main() {
	cmd := root.NewCmdRoot()
	err := cmd.Execute()
	log.Flush()
	if err != nil {
		renderer := view.NewRenderer(view.FormatPlain, false)
		renderer.SetWriter(os.Stderr)
		renderer.Error(err.Error())
		os.Exit(1)
	}
}
