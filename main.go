package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"leaveboard/internal/config"
	"leaveboard/internal/devapi"
)

func newAppHandler() *app.Handler {
	return &app.Handler{
		Name:        "Leaveboard",
		ShortName:   "Leaveboard",
		Description: "Leave request management",
		Styles:      []string{"/web/app.css"},
	}
}

func backendProxy(target string) (http.Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	return httputil.NewSingleHostReverseProxy(u), nil
}

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	if cfg.Dev {
		db, err := devapi.OpenDB(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open dev database")
		}
		defer db.Close()
		devapi.NewServer(db).Register(mux)
	} else {
		proxy, err := backendProxy(cfg.BackendURL)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.BackendURL).Msg("parse backend url")
		}
		mux.Handle("/auth/", proxy)
		mux.Handle("/leave/", proxy)
	}

	// Everything else, including /web/app.wasm, is the client shell.
	mux.Handle("/", newAppHandler())

	log.Info().Str("addr", cfg.Addr).Bool("dev", cfg.Dev).Msg("leaveboard listening")
	if err := http.ListenAndServe(cfg.Addr, requestMiddleware(mux)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
