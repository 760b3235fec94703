package main

import (
	"os"

	"github.com/rolodex-hq/rolodex/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
