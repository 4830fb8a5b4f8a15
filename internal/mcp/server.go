package mcp

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kmadof/mediare/internal/config"
	"github.com/kmadof/mediare/internal/resolver"
)

const (
	// ServerName is the MCP server name
	ServerName = "mediare"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

var ErrNilConfig = errors.New("config is required")

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	cfg      *config.Config
	resolver *resolver.Resolver
	logger   *log.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if logger == nil {
		logger = cfg.NewLogger(ServerName)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		cfg:      cfg,
		resolver: resolver.New(cfg.ResolverOptions(logger)),
		logger:   logger,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving on stdio", "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(findCompanionTool(), s.handleFindCompanion)
	s.mcp.AddTool(deriveCompanionNameTool(), s.handleDeriveCompanionName)
	s.mcp.AddTool(listProjectsTool(), s.handleListProjects)
}
