package main

import (
	"context"
	"log"

	"chatbot-flow-be/internal/bootstrap"
	"chatbot-flow-be/internal/config"
	"chatbot-flow-be/internal/server"
	"chatbot-flow-be/internal/tracer"
	"chatbot-flow-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Analytics Consumer...")
		if err := container.AnalyticsService.Consume(context.Background()); err != nil {
			log.Printf("Background Analytics Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Graph Invalidation Subscriber...")
		container.GraphSubscriber.Run(context.Background())
	}()

	// 6. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
