package main

import (
	"os"

	"github.com/sixtey7/fjledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
