package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"modelgate/internal/api"
	"modelgate/internal/api/handlers"
	"modelgate/internal/apperror"
	"modelgate/internal/domain/mcpserver"
	"modelgate/internal/health"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMcpRegistry struct {
	servers map[string]mcpserver.McpServer
}

func newMemMcpRegistry() *memMcpRegistry {
	return &memMcpRegistry{servers: make(map[string]mcpserver.McpServer)}
}

func (r *memMcpRegistry) Create(_ context.Context, server mcpserver.McpServer) error {
	if _, ok := r.servers[server.ServerID]; ok {
		return apperror.ErrAlreadyExists
	}
	r.servers[server.ServerID] = server
	return nil
}

func (r *memMcpRegistry) GetAll(context.Context) ([]mcpserver.McpServer, error) {
	out := make([]mcpserver.McpServer, 0, len(r.servers))
	for _, s := range r.servers {
		out = append(out, s)
	}
	return out, nil
}

func (r *memMcpRegistry) Get(_ context.Context, serverID string) (mcpserver.McpServer, error) {
	s, ok := r.servers[serverID]
	if !ok {
		return mcpserver.McpServer{}, apperror.ErrNotFound
	}
	return s, nil
}

func (r *memMcpRegistry) Delete(_ context.Context, serverID string) error {
	if _, ok := r.servers[serverID]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.servers, serverID)
	return nil
}

func newMcpEngine(t *testing.T, registry mcpserver.Registry) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orch := health.NewOrchestrator(health.NewProber(backendFunc(func(context.Context, health.Endpoint) error { return nil })), 0)
	svc := health.NewService(nil, "", orch, nil, health.NewReadinessCache(0), nil, nil)

	engine := gin.New()
	router := api.NewRouter(handlers.NewHealthHandler(svc), nil, handlers.NewMcpServerHandler(registry), testMasterKey)
	router.SetUp(engine)
	return engine
}

func TestMcpServerHandler_CRUD(t *testing.T) {
	registry := newMemMcpRegistry()
	engine := newMcpEngine(t, registry)

	t.Run("create generates an id when absent", func(t *testing.T) {
		rec := doRequest(engine, http.MethodPost, "/mcp/servers", `{"alias":"tools","url":"https://mcp.internal"}`, true)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "server_id")
		require.Len(t, registry.servers, 1)
	})

	t.Run("create without url rejected", func(t *testing.T) {
		rec := doRequest(engine, http.MethodPost, "/mcp/servers", `{"alias":"broken"}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get and delete by id", func(t *testing.T) {
		require.NoError(t, registry.Create(context.Background(), mcpserver.McpServer{ServerID: "srv-1", Alias: "a", URL: "https://x"}))

		rec := doRequest(engine, http.MethodGet, "/mcp/servers/srv-1", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"server_id":"srv-1"`)

		rec = doRequest(engine, http.MethodDelete, "/mcp/servers/srv-1", "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(engine, http.MethodGet, "/mcp/servers/srv-1", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("requires master key", func(t *testing.T) {
		rec := doRequest(engine, http.MethodGet, "/mcp/servers", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
