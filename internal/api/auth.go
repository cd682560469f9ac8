package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MasterKeyAuth guards administrative routes with a single bearer key.
// Probe routes stay open so orchestrators can reach them without secrets.
func MasterKeyAuth(masterKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(masterKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or missing master key"})
			return
		}
		c.Next()
	}
}
