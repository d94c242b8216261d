package main

import (
	"os"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
