package main

import (
	"os"

	"github.com/ipfs/go-log/v2"

	"github.com/timre13/lightmusic-desktop/cli"
)

func main() {
	logger := log.Logger("lightmusic")

	err := cli.New().Run(os.Args)
	if err != nil {
		logger.Fatalf("Error occurred: %v", err)
	}
}
