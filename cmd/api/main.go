// Headless JSON API over the registration data, for consumers that bring
// their own presentation layer.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"rinkmetrics/internal/api"
	"rinkmetrics/internal/config"
	"rinkmetrics/internal/errors"
	"rinkmetrics/internal/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := os.Stat(appConfig.Data.File); err != nil {
		log.Fatalf("%v", errors.DataSourceMissing(appConfig.Data.File))
	}

	store := loader.NewStore(loader.NewLoader(), appConfig.Data.Shape)
	if _, err := store.Get(appConfig.Data.File); err != nil {
		log.Fatalf("Failed to load registration data: %v", err)
	}

	server := api.NewServer(store, appConfig.Data.File)
	log.Fatal(server.Start(":" + appConfig.API.Port))
}
