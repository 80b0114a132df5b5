// Command export triggers a warehouse job that copies the Landsat scene
// catalog metadata into the configured destination table. By default it
// blocks until the job finishes; pass -nowait to fire and forget.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/skyward-data/scenes.report/internal/config"
	"github.com/skyward-data/scenes.report/internal/exporter"
	"github.com/skyward-data/scenes.report/internal/version"
	"github.com/skyward-data/scenes.report/internal/warehouse"
)

func main() {
	var configPath string
	var noWait bool
	var showVersion bool

	flag.StringVar(&configPath, "config", config.DefaultSettingsPath, "path to settings JSON")
	flag.BoolVar(&noWait, "nowait", false, "submit the export job without waiting for completion")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		log.Printf("export %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath, !noWait); err != nil {
		log.Fatalf("export failed: %v", err)
	}
}

func run(ctx context.Context, configPath string, wait bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForExport(); err != nil {
		return err
	}

	wh, err := warehouse.NewClient(ctx, cfg.CloudProject, cfg.Location)
	if err != nil {
		return err
	}
	defer wh.Close()

	return exporter.New(cfg, wh).Run(ctx, wait)
}
