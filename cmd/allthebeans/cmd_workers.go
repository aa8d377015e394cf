package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/internal/server"
	"github.com/shashiranjanraj/allthebeans/pkg/cache"
	"github.com/shashiranjanraj/allthebeans/pkg/queue"
)

var queueWorkersFlag int

// allthebeans queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.Boot()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		services.RegisterJobs()
		queue.UseDB(db)
		if config.QueueDriver() == "redis" && cache.Client() != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.Client()))
		}

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
