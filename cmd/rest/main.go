package main

import (
	"context"
	"log"

	"booknotion-be/internal/bootstrap"
	"booknotion-be/internal/config"
	"booknotion-be/internal/pkg/logger"
	"booknotion-be/internal/server"
	"booknotion-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Logger
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 3. Initialize Database (postgres when reachable, embedded store otherwise)
	uowFactory, err := database.NewRepositoryFactory(cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to initialize database: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(uowFactory, cfg, sysLogger)

	// 5. Start Background Services
	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			sysLogger.Error("main", "consumer failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
