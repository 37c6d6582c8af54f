// Package mcp exposes the builder pipeline as a Model Context Protocol
// server, so agents can list topics, render diagrams and run validation
// against stored projects.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/statuml/statuml"
	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/domain"
	"github.com/statuml/statuml/pkg/ports"
)

// TopicInfo is the per-topic entry returned by list_topics.
type TopicInfo struct {
	ID    string `json:"id" jsonschema_description:"Topic identifier"`
	Label string `json:"label" jsonschema_description:"Display label"`
	Kind  string `json:"kind" jsonschema_description:"Topic kind: root or normal"`
}

// TopicsResponse is the structured output of list_topics.
type TopicsResponse struct {
	Topics []TopicInfo `json:"topics" jsonschema_description:"Topics of the project"`
}

// ValidationResponse is the structured output of validate_project.
type ValidationResponse struct {
	Issues    []validator.Issue `json:"issues" jsonschema_description:"All findings, errors and warnings"`
	HasErrors bool              `json:"hasErrors" jsonschema_description:"True when at least one error-level issue exists"`
}

// Server wraps a project store and exposes the pipeline as an MCP Server.
type Server struct {
	store     ports.ProjectStore
	fields    *validator.FieldConfig
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. fields may be nil to skip
// vocabulary checks.
func NewServer(store ports.ProjectStore, fields *validator.FieldConfig) *Server {
	s := &Server{
		store:     store,
		fields:    fields,
		mcpServer: server.NewMCPServer("statuml-mcp", strings.TrimSpace(statuml.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_topics
	topicsTool := mcp.NewTool("list_topics",
		mcp.WithDescription("List the topics of a stored project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The ID of the stored project")),
		mcp.WithOutputSchema[TopicsResponse](),
	)
	s.mcpServer.AddTool(topicsTool, mcp.NewStructuredToolHandler(s.handleListTopics))

	// TOOL: generate_topic_puml
	topicPumlTool := mcp.NewTool("generate_topic_puml",
		mcp.WithDescription("Render the PlantUML state diagram for a single topic."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The ID of the stored project")),
		mcp.WithString("topic_id", mcp.Required(), mcp.Description("The ID of the topic to render")),
	)
	s.mcpServer.AddTool(topicPumlTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, errResult := s.loadProject(ctx, request)
		if errResult != nil {
			return errResult, nil
		}

		topicID := request.GetString("topic_id", "")
		text, ok := puml.GenerateTopic(p, topicID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("topic %q not found", topicID)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: generate_complete_puml
	completePumlTool := mcp.NewTool("generate_complete_puml",
		mcp.WithDescription("Render the aggregate PlantUML diagram covering every topic of the project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The ID of the stored project")),
	)
	s.mcpServer.AddTool(completePumlTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, errResult := s.loadProject(ctx, request)
		if errResult != nil {
			return errResult, nil
		}

		text, ok := puml.GenerateComplete(p)
		if !ok {
			return mcp.NewToolResultError("project has no root topic; aggregate diagram cannot be generated"), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: validate_project
	validateTool := mcp.NewTool("validate_project",
		mcp.WithDescription("Run all validation checks over a stored project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The ID of the stored project")),
		mcp.WithOutputSchema[ValidationResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

// Handler methods for structured tools

func (s *Server) handleListTopics(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TopicsResponse, error) {
	projectID, _ := args["project_id"].(string)
	p, err := s.store.Load(ctx, projectID)
	if err != nil {
		return TopicsResponse{}, fmt.Errorf("load failed: %w", err)
	}

	resp := TopicsResponse{Topics: make([]TopicInfo, 0, len(p.Topics))}
	for _, topic := range p.Topics {
		resp.Topics = append(resp.Topics, TopicInfo{
			ID:    topic.ID,
			Label: topic.Label,
			Kind:  string(topic.Kind),
		})
	}
	return resp, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidationResponse, error) {
	projectID, _ := args["project_id"].(string)
	p, err := s.store.Load(ctx, projectID)
	if err != nil {
		return ValidationResponse{}, fmt.Errorf("load failed: %w", err)
	}

	issues := validator.Validate(p, s.fields)
	if issues == nil {
		issues = []validator.Issue{}
	}
	return ValidationResponse{
		Issues:    issues,
		HasErrors: validator.HasErrors(issues),
	}, nil
}

func (s *Server) loadProject(ctx context.Context, request mcp.CallToolRequest) (*domain.Project, *mcp.CallToolResult) {
	projectID := request.GetString("project_id", "")
	p, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err))
	}
	return p, nil
}

func (s *Server) registerResources() {
	// EXPOSE: statuml://projects
	s.mcpServer.AddResource(mcp.NewResource("statuml://projects", "Stored Projects",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "statuml://projects",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
