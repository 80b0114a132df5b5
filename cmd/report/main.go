// Command report runs the aggregation queries against the exported scene
// table and writes the cumulative-acquisitions chart, the cloud-cover
// histogram and the clear-scenes animation to the output directory.
//
// Query results are cached in a local SQLite database so a re-render does
// not re-bill the warehouse; pass -refresh to discard the cache first. An
// optional debug listener serves a read-only SQL browser over the cache.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/skyward-data/scenes.report/internal/config"
	"github.com/skyward-data/scenes.report/internal/report"
	"github.com/skyward-data/scenes.report/internal/resultcache"
	"github.com/skyward-data/scenes.report/internal/version"
	"github.com/skyward-data/scenes.report/internal/warehouse"
)

func main() {
	var configPath string
	var autoConfirm bool
	var refresh bool
	var inspectListen string
	var showVersion bool

	flag.StringVar(&configPath, "config", config.DefaultSettingsPath, "path to settings JSON")
	flag.BoolVar(&autoConfirm, "yes", false, "run queries above the cost warning threshold without prompting")
	flag.BoolVar(&refresh, "refresh", false, "purge the local result cache before querying")
	flag.StringVar(&inspectListen, "inspect-listen", "", "optional addr for the cache debug server, e.g. localhost:8080")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		log.Printf("report %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath, autoConfirm, refresh, inspectListen); err != nil {
		log.Fatalf("report failed: %v", err)
	}
}

func run(ctx context.Context, configPath string, autoConfirm, refresh bool, inspectListen string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wh, err := warehouse.NewClient(ctx, cfg.CloudProject, cfg.Location)
	if err != nil {
		return err
	}
	defer wh.Close()

	cache, err := resultcache.Open(cfg.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	if refresh {
		if err := cache.Purge(); err != nil {
			return err
		}
	}

	if inspectListen != "" {
		mux := http.NewServeMux()
		if err := cache.AttachDebugRoutes(mux, cfg.FullTableID()); err != nil {
			return err
		}
		go func() {
			log.Printf("cache inspector listening on %s", inspectListen)
			if err := http.ListenAndServe(inspectListen, mux); err != nil {
				log.Printf("cache inspector error: %v", err)
			}
		}()
	}

	guard := &warehouse.Guard{
		Estimator:      wh,
		PricePerTiBUSD: cfg.PricePerTiBUSD,
		WarnUSD:        cfg.CostWarnUSD,
	}
	if autoConfirm {
		guard.Confirm = func(string) bool { return true }
	}

	q := &resultcache.Querier{Cache: cache, Live: wh, Guard: guard}
	return report.NewRunner(cfg, q, wh).Run(ctx)
}
