// Package mcpserver defines the registered MCP server and its registry port.
package mcpserver

import (
	"context"
	"time"
)

// McpServer is one registered MCP server deployment.
type McpServer struct {
	ServerID    string    `json:"server_id"`
	Alias       string    `json:"alias"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Transport   string    `json:"transport"`
	AuthType    string    `json:"auth_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Registry is the MCP server data store: create/read/delete by ID.
type Registry interface {
	Create(ctx context.Context, server McpServer) error
	GetAll(ctx context.Context) ([]McpServer, error)
	Get(ctx context.Context, serverID string) (McpServer, error)
	Delete(ctx context.Context, serverID string) error
}
