package handlers

import (
	"errors"
	"net/http"

	"modelgate/internal/apperror"
	"modelgate/internal/domain/credential"

	"github.com/gin-gonic/gin"
)

type CredentialHandler struct {
	store credential.Store
}

func NewCredentialHandler(s credential.Store) *CredentialHandler {
	return &CredentialHandler{store: s}
}

func (h *CredentialHandler) Create(c *gin.Context) {
	var cred credential.Credential
	if err := c.ShouldBindJSON(&cred); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}
	if cred.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credential_name"})
		return
	}

	if err := h.store.Create(c.Request.Context(), cred); err != nil {
		if errors.Is(err, apperror.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "Credential already exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Credential created"})
}

func (h *CredentialHandler) GetAll(c *gin.Context) {
	creds, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"credentials": stripSecrets(creds)})
}

func (h *CredentialHandler) Get(c *gin.Context) {
	name := c.Param("credential_name")

	cred, err := h.store.Get(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Credential not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	cred.Values = nil
	c.JSON(http.StatusOK, cred)
}

func (h *CredentialHandler) Delete(c *gin.Context) {
	name := c.Param("credential_name")

	if err := h.store.Delete(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Credential not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Credential deleted"})
}

// stripSecrets drops the secret values before the credentials leave the API.
func stripSecrets(creds []credential.Credential) []credential.Credential {
	out := make([]credential.Credential, len(creds))
	for i, cred := range creds {
		cred.Values = nil
		out[i] = cred
	}
	return out
}
