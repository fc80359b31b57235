package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextDriverClaims is the key used to store driver token claims in the Gin context.
	ContextDriverClaims = "driverClaims"
)

// Authoriz rejects requests without a valid bearer driver token and stores
// the token's claims in the context for the controllers.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing driver token"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid driver token"})
			return
		}

		c.Set(ContextDriverClaims, claims)
		c.Next()
	}
}

// Claims returns the driver claims stored by Authoriz.
func Claims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(ContextDriverClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(map[string]interface{})
	return claims
}
