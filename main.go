package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"streamproxy/api"
	"streamproxy/config"
	"streamproxy/handlers"
	"streamproxy/services/alist"
	"streamproxy/services/emby"
	"streamproxy/services/gateway"
	"streamproxy/services/stream"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	// Optional .env for container deployments; missing file is fine
	_ = godotenv.Load()

	configPath := os.Getenv("STREAMPROXY_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	embyClient := emby.NewClient(settings.Emby.URL, settings.Emby.APIKey)
	alistClient := alist.NewClient(settings.Alist.URL, settings.Alist.APIKey)
	gatewayClient := gateway.NewClient(settings.Gateway.URL, settings.Gateway.Token)

	streamService := stream.NewService(settings, embyClient, alistClient, gatewayClient)
	streamHandler := handlers.NewStreamHandler(streamService, settings.Emby.APIKey)

	slog.Info("redirect backend selected",
		"mode", streamService.Mode().String(),
		"emby_url", settings.Emby.URL,
	)

	r := mux.NewRouter()
	api.Register(r, streamHandler)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
