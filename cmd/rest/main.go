// FILE: cmd/rest/main.go
package main

import (
	"context"
	"log"

	"rag-admin-be/internal/bootstrap"
	"rag-admin-be/internal/config"
	"rag-admin-be/internal/server"
	"rag-admin-be/internal/tracer"
	"rag-admin-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// Tracing is a no-op unless OTEL_ENABLED=true.
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start background workers
	go func() {
		log.Println("Background: starting ingest consumer...")
		if err := container.IngestConsumer.Consume(context.Background()); err != nil {
			log.Printf("Ingest consumer error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: starting evaluation consumer...")
		if err := container.EvaluationConsumer.Consume(context.Background()); err != nil {
			log.Printf("Evaluation consumer error: %v", err)
		}
	}()

	// 5. Start maintenance jobs
	container.Scheduler.Start()
	defer container.Scheduler.Stop()

	// 6. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
