package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml/internal/adapters/file"
	httpAdapter "github.com/statuml/statuml/internal/adapters/http"
	"github.com/statuml/statuml/internal/adapters/memory"
	redisAdapter "github.com/statuml/statuml/internal/adapters/redis"
	"github.com/statuml/statuml/internal/logging"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the builder API over HTTP: project storage, rendered diagrams,
validation reports and export bundles.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		logger := logging.New(logLevel(cmd))

		projectStore, err := buildStore(cmd)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}

		// Seed the store from the snapshot flag when one was given.
		if cmd.Flags().Changed("project") {
			path, _ := cmd.Flags().GetString("project")
			p, err := store.Load(path)
			if err != nil {
				fmt.Printf("Error loading seed project: %v\n", err)
				os.Exit(1)
			}
			id := projectID(path)
			if err := projectStore.Save(cmd.Context(), id, p); err != nil {
				fmt.Printf("Error seeding store: %v\n", err)
				os.Exit(1)
			}
			logger.Info("seeded project", "project_id", id, "path", path)
		}

		var fields *validator.FieldConfig
		if fieldsPath, _ := cmd.Flags().GetString("fields"); fieldsPath != "" {
			fields, err = validator.LoadFieldConfig(fieldsPath)
			if err != nil {
				fmt.Printf("Error loading field vocabulary: %v\n", err)
				os.Exit(1)
			}
		}

		handler := httpAdapter.NewHandler(projectStore, fields, logger)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting statuml server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("statuml server stopped gracefully")
		}
	},
}

func buildStore(cmd *cobra.Command) (ports.ProjectStore, error) {
	backend, _ := cmd.Flags().GetString("store")
	switch backend {
	case "memory":
		return memory.New(), nil
	case "file":
		dir, _ := cmd.Flags().GetString("store-dir")
		return file.New(dir), nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		ttl, _ := cmd.Flags().GetDuration("redis-ttl")

		opts := []redisAdapter.Option{}
		if ttl > 0 {
			opts = append(opts, redisAdapter.WithTTL(ttl))
		}
		return redisAdapter.New(addr, password, db, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s. Supported: memory, file, redis", backend)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Project store backend: 'memory', 'file' or 'redis'")
	serveCmd.Flags().String("store-dir", "", "Directory for snapshot files (store=file)")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address (store=redis)")
	serveCmd.Flags().String("redis-password", "", "Redis password (store=redis)")
	serveCmd.Flags().Int("redis-db", 0, "Redis database (store=redis)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration for stored projects, 0 keeps them forever (store=redis)")
}
