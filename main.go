package main

import (
	"os"

	"github.com/vqetools/portlab/internal/cli"
	"github.com/vqetools/portlab/internal/logger"
)

func main() {
	if err := cli.RootCommand().Execute(); err != nil {
		log := logger.Logger()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
