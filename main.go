package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"rinkmetrics/internal/api"
	"rinkmetrics/internal/config"
	"rinkmetrics/internal/errors"
	"rinkmetrics/internal/loader"
	"rinkmetrics/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// A missing source is the one fatal startup condition; everything else
	// degrades per row or per query.
	if _, err := os.Stat(appConfig.Data.File); err != nil {
		log.Fatalf("%v", errors.DataSourceMissing(appConfig.Data.File))
	}

	store := loader.NewStore(loader.NewLoader(), appConfig.Data.Shape)
	if _, err := store.Get(appConfig.Data.File); err != nil {
		log.Fatalf("Failed to load registration data: %v", err)
	}

	apiServer := api.NewServer(store, appConfig.Data.File)

	server, err := ui.NewServer(ui.Config{
		Port:     appConfig.Server.Port,
		GinMode:  appConfig.Server.GinMode,
		DataFile: appConfig.Data.File,
	}, store, apiServer.Routes())
	if err != nil {
		log.Fatal("Failed to create dashboard server:", err)
	}

	log.Fatal(server.Start())
}
