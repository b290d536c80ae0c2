package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ananis25/jute/internal/config"
	"github.com/ananis25/jute/internal/server"
)

func main() {
	jupyterURL := flag.String("jupyter", "", "Jupyter server URL (overrides JUPYTER_URL)")
	token := flag.String("token", "", "Jupyter auth token (overrides JUPYTER_TOKEN)")
	port := flag.String("port", "", "Server port (overrides PORT)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *jupyterURL != "" {
		cfg.Jupyter.URL = *jupyterURL
	}
	if *token != "" {
		cfg.Jupyter.Token = *token
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
