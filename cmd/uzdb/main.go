package main

import (
	"os"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
