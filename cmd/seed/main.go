// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed is the operator tool for the spell catalogue.
//
// # Subcommands
//
//   - load: upsert every spell of a YAML file into PostgreSQL.
//   - check: run a search against a YAML file in memory, no database needed.
//   - token: mint an access token for calling the protected endpoints.
package main

import (
	"log/slog"
	"os"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := newRootCommand(os.Stdout, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
