package main

import (
	"log"

	"github.com/joho/godotenv"

	"skudiff/api"
	"skudiff/app"
	"skudiff/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server := api.NewServer(appConfig, app.NewCompareService())
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
