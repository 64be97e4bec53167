package main

import (
	"context"
	"log"

	"event-reg-be/internal/bootstrap"
	"event-reg-be/internal/config"
	"event-reg-be/internal/server"
	"event-reg-be/internal/tracer"
	"event-reg-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
