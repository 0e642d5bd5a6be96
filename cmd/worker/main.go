package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/saaabbasi2121-ai/Vidra-AI/internal/platform"
	"github.com/saaabbasi2121-ai/Vidra-AI/processing"
	"github.com/saaabbasi2121-ai/Vidra-AI/tasks"
	"github.com/saaabbasi2121-ai/Vidra-AI/worker"
)

func main() {
	cfg, err := platform.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db := platform.NewDBConnection(cfg)
	rdb := platform.NewRedisClient(cfg)

	gen, err := processing.NewGenerator(cfg)
	if err != nil {
		log.Fatal("Failed to initialize generator:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := worker.NewProcessor(db, rdb, gen)
	p.Register(tasks.QueueVideoGenerate, p.HandleVideoGeneration)

	log.Println("Worker started, waiting for queue tasks...")
	p.Listen(ctx, tasks.QueueVideoGenerate)
}
