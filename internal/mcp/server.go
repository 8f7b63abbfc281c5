// ABOUTME: MCP server setup for the superlift workout log.
// ABOUTME: Wraps the MCP server around a storage Repository.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/superlift/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      *storage.Repository
	logger    *log.Logger
}

// NewServer creates a new MCP server over repo.
func NewServer(repo *storage.Repository, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "superlift",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
