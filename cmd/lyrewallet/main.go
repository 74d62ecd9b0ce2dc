package main

import (
	"os"

	"github.com/lyrechain/LyreWallet/cmd/lyrewallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
