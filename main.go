package main

import (
	"log/slog"
	"os"

	"github.com/danielhkuo/tokenpoll/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		slog.Error("tokenpoll failed", "error", err)
		os.Exit(1)
	}
}
