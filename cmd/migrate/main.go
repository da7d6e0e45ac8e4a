// Command migrate applies the declarative schema in migrations/ with Atlas.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"wheelshare/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "file://migrations", "desired schema (Atlas URL)")
	devURL := flag.String("dev-url", "docker://postgres/17/dev", "dev database Atlas diffs against")
	dryRun := flag.Bool("dry-run", false, "print the planned statements without applying them")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		logger.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(context.Background(), &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          *dir,
		DevURL:      *devURL,
		DryRun:      *dryRun,
		AutoApprove: true,
	})
	if err != nil {
		logger.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	for _, stmt := range res.Changes.Pending {
		logger.Info("planned", "statement", stmt)
	}
	logger.Info("schema apply finished", "applied", len(res.Changes.Applied), "dry_run", *dryRun)
}
