package handlers

import (
	"errors"
	"net/http"

	"modelgate/internal/apperror"
	"modelgate/internal/domain/mcpserver"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type McpServerHandler struct {
	registry mcpserver.Registry
}

func NewMcpServerHandler(r mcpserver.Registry) *McpServerHandler {
	return &McpServerHandler{registry: r}
}

func (h *McpServerHandler) Create(c *gin.Context) {
	var server mcpserver.McpServer
	if err := c.ShouldBindJSON(&server); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}
	if server.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing url"})
		return
	}
	if server.ServerID == "" {
		server.ServerID = uuid.NewString()
	}

	if err := h.registry.Create(c.Request.Context(), server); err != nil {
		if errors.Is(err, apperror.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "MCP server already exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"server_id": server.ServerID})
}

func (h *McpServerHandler) GetAll(c *gin.Context) {
	servers, err := h.registry.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"servers": servers})
}

func (h *McpServerHandler) Get(c *gin.Context) {
	serverID := c.Param("server_id")

	server, err := h.registry.Get(c.Request.Context(), serverID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "MCP server not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, server)
}

func (h *McpServerHandler) Delete(c *gin.Context) {
	serverID := c.Param("server_id")

	if err := h.registry.Delete(c.Request.Context(), serverID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "MCP server not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "MCP server deleted"})
}
