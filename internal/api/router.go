package api

import (
	"modelgate/internal/api/handlers"
	"modelgate/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	health     *handlers.HealthHandler
	credential *handlers.CredentialHandler
	mcpServer  *handlers.McpServerHandler
	masterKey  string
}

func NewRouter(
	health *handlers.HealthHandler,
	credential *handlers.CredentialHandler,
	mcpServer *handlers.McpServerHandler,
	masterKey string,
) *Router {
	return &Router{
		health:     health,
		credential: credential,
		mcpServer:  mcpServer,
		masterKey:  masterKey,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Probe endpoints stay unauthenticated for orchestrators.
	// Both liveness spellings answer, matching long-standing clients.
	engine.GET("/health/liveliness", r.health.Liveness)
	engine.GET("/health/liveness", r.health.Liveness)
	engine.GET("/health/readiness", r.health.Readiness)

	// Prometheus metrics
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	authed := engine.Group("/", MasterKeyAuth(r.masterKey))

	authed.GET("/health", r.health.Check)
	authed.POST("/health/test_connection", r.health.TestConnection)

	if r.credential != nil {
		authed.POST("/credentials", r.credential.Create)
		authed.GET("/credentials", r.credential.GetAll)
		authed.GET("/credentials/:credential_name", r.credential.Get)
		authed.DELETE("/credentials/:credential_name", r.credential.Delete)
	}

	if r.mcpServer != nil {
		authed.POST("/mcp/servers", r.mcpServer.Create)
		authed.GET("/mcp/servers", r.mcpServer.GetAll)
		authed.GET("/mcp/servers/:server_id", r.mcpServer.Get)
		authed.DELETE("/mcp/servers/:server_id", r.mcpServer.Delete)
	}
}
