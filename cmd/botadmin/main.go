package main

import (
	"os"

	"github.com/gochat247/botadmin/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
