package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/api"
	"salesdesk/pkg/backoffice"
	"salesdesk/pkg/config"
	"salesdesk/pkg/metrics"
	"salesdesk/pkg/sheets"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", config.DefaultFilename, "Path to the TOML configuration file")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := sheets.NewService(cfg, sheets.WithMetrics(m))
	desk := backoffice.New(svc, cfg, m)

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           api.GetRouter(desk, svc),
		ReadHeaderTimeout: 2 * time.Second,
	}
	go startServer(server)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
}

func startServer(server *http.Server) {
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
