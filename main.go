package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"retrochess/internal/api"
	"retrochess/internal/game"
	"retrochess/internal/handlers"
	"retrochess/internal/logging"
	"retrochess/internal/templates"
)

type config struct {
	debug     bool
	addr      string
	apiBase   string
	timeout   time.Duration
	autoQueen bool
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("retrochess", flag.ContinueOnError)
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.StringVar(&c.addr, "addr", ":8080", "listen address")
	fs.StringVar(&c.apiBase, "api", api.BaseURLFromEnv(), "chess backend base URL (env "+api.EnvAPIBase+" or "+api.EnvBackendURL+")")
	fs.DurationVar(&c.timeout, "timeout", api.DefaultTimeout, "timeout for each backend request")
	fs.BoolVar(&c.autoQueen, "autoqueen", false, "promote pawns reaching the last rank to a queen")
	err := fs.Parse(args)
	return c, err
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	logging.Setup(os.Stderr, cfg.debug)

	templates.SetCommit(commit)

	client := api.New(cfg.apiBase, api.WithTimeout(cfg.timeout))

	// Initialize session hub
	hub := game.NewHub(client, cfg.autoQueen)
	defer hub.Close()

	// Initialize HTTP handlers
	h := handlers.NewHandler(hub)

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Logger.Info().
		Str("addr", cfg.addr).
		Str("backend", client.BaseURL()).
		Str("commit", commit).
		Str("built", buildDate).
		Msg("Retro Chess listening")
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
