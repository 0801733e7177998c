package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jstittsworth/dfs-optimizer/pkg/utils"
)

// Claims is the bearer-token payload for the run-history admin routes.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// AuthRequired rejects requests without a valid bearer token, grounded on
// the teacher's middleware.AuthRequired.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtSecret)
		if !ok {
			utils.SendUnauthorized(c, "invalid or missing bearer token")
			c.Abort()
			return
		}
		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but never
// rejects the request.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtSecret); ok {
			c.Set("subject", claims.Subject)
			c.Set("authenticated", true)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtSecret string) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
