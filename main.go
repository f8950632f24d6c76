package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/dehackhq/dehack-api/api/handlers"
	"github.com/dehackhq/dehack-api/api/scheduler"
	"github.com/dehackhq/dehack-api/config"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	if a.Config.BackupDir != "" {
		s := scheduler.New(a.Config.DataDir, a.Config.BackupDir)
		if err := s.Start(a.Config.BackupSchedule); err != nil {
			log.Fatal(err)
		}
		defer s.Stop()
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	zap.S().Infow("dehack-api is up and running",
		"port", a.Config.Port,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), corsMiddleware.Handler(a.Router)))
}
