package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/statuml/statuml/internal/adapters/memory"
	"github.com/statuml/statuml/internal/logging"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts statuml as an MCP Server so AI agents can list topics, render
diagrams and validate stored projects as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logger := logging.New(logLevel(cmd))
		slog.SetDefault(logger)

		// The MCP server works against an in-memory store seeded from the
		// snapshot flag.
		projectStore := memory.New()
		if path, _ := cmd.Flags().GetString("project"); path != "" {
			p, err := store.Load(path)
			if err != nil {
				log.Fatalf("Error loading project: %v", err)
			}
			id := projectID(path)
			if err := projectStore.Save(cmd.Context(), id, p); err != nil {
				log.Fatalf("Error seeding store: %v", err)
			}
			slog.Info("seeded project", "project_id", id)
		}

		var fields *validator.FieldConfig
		if fieldsPath, _ := cmd.Flags().GetString("fields"); fieldsPath != "" {
			cfg, err := validator.LoadFieldConfig(fieldsPath)
			if err != nil {
				log.Fatalf("Error loading field vocabulary: %v", err)
			}
			fields = cfg
		}

		srv := mcp.NewServer(projectStore, fields)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting statuml MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting statuml MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
