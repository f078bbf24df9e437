package main

import (
	"fmt"
	"os"

	"github.com/mithrel/notion2md/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "notion2md:", err)
		os.Exit(1)
	}
}
