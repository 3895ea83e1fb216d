package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"galcon/internal/catalog"
	"galcon/internal/config"
	"galcon/internal/credstore"
	"galcon/internal/dispatch"
	"galcon/internal/logger"
	"galcon/internal/model"
	"galcon/internal/ui"
)

var version = "1.0.0"

var (
	baseURL     string
	catalogFile string
	specURL     string
	timeout     time.Duration
	debug       bool
	noStore     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "galcon",
		Short:   "galcon - interactive console for the galaxy search API",
		Long:    "galcon is a terminal console for composing and sending requests\nagainst a galaxy search API gateway: pick an endpoint, fill its form\nor raw JSON body, set the galaxy-* headers, and inspect the response.",
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "base URL of the API gateway (default $GALCON_BASE_URL or http://127.0.0.1:8000)")
	rootCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML file with extra or replacement endpoint definitions")
	rootCmd.Flags().StringVar(&specURL, "spec-url", "", "OpenAPI document (http/https URL or local path) to import endpoints from")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (0 = none)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log under the data directory")
	rootCmd.Flags().BoolVar(&noStore, "no-store", false, "never persist credentials, even if previously remembered")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSpace(baseURL)
	}
	if debug {
		cfg.Debug = true
	}

	log, closeLog := logger.New(cfg.LogPath(), cfg.Debug)
	defer closeLog()

	reg := catalog.Builtin()

	if specURL != "" {
		eps, specBase, err := catalog.LoadOpenAPI(context.Background(), specURL)
		if err != nil {
			return fmt.Errorf("load openapi document: %w", err)
		}
		if err := reg.Merge(eps); err != nil {
			return fmt.Errorf("merge openapi endpoints: %w", err)
		}
		if baseURL == "" && specBase != "" {
			cfg.BaseURL = specBase
		}
		log.Info().Str("spec", specURL).Int("endpoints", len(eps)).Msg("imported openapi document")
	}

	if catalogFile != "" {
		eps, err := catalog.LoadFile(catalogFile)
		if err != nil {
			return fmt.Errorf("load catalog file: %w", err)
		}
		if err := reg.Merge(eps); err != nil {
			return fmt.Errorf("merge catalog endpoints: %w", err)
		}
		log.Info().Str("file", catalogFile).Int("endpoints", len(eps)).Msg("merged catalog file")
	}

	var store *credstore.Store
	if !noStore {
		s, err := credstore.Open(cfg.StorePath())
		if err != nil {
			// degraded but usable: credentials just won't persist
			log.Warn().Err(err).Str("path", cfg.StorePath()).Msg("credential store unavailable")
		} else {
			store = s
			defer store.Close()
		}
	}

	// Remembered credentials win over environment seeds.
	seed := model.Credentials{Name: cfg.APName, Secret: cfg.APPassword}
	remember := false
	if store != nil {
		if creds, found, err := store.Load(); err != nil {
			log.Warn().Err(err).Msg("load stored credentials")
		} else if found {
			seed = creds
			remember = true
		}
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(log),
	}
	if store != nil {
		opts = append(opts, dispatch.WithStore(store))
	}
	if timeout > 0 {
		opts = append(opts, dispatch.WithTimeout(timeout))
	}
	d := dispatch.New(cfg.BaseURL, opts...)

	app := ui.New(reg, d, store, seed, remember, log)
	log.Info().Str("base_url", cfg.BaseURL).Int("endpoints", reg.Len()).Msg("starting console")
	return app.Run()
}
