package main

import (
	"os"

	"librarium/cli"
)

func main() {
	os.Exit(cli.Execute())
}
