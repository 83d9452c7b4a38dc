package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	HeaderViewer = "X-Viewer"
	ctxViewer    = "viewer"
)

// Viewer resolves who is making the request. With a secret configured only
// a bearer token signed with it can name the viewer, in its sub (or
// username) claim; a token that does not verify is rejected and X-Viewer is
// ignored. Without a secret the X-Viewer header is used. Otherwise the
// viewer is fallback.
func Viewer(secret, fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := fallback

		if h := strings.TrimSpace(c.GetHeader(HeaderViewer)); secret == "" && h != "" {
			viewer = h
		}

		if auth := c.GetHeader("Authorization"); secret != "" && auth != "" {
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a bearer token"})
				return
			}
			name, err := VerifyToken(parts[1], secret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			viewer = name
		}

		c.Set(ctxViewer, viewer)
		c.Next()
	}
}

// ViewerFrom returns the viewer set by Viewer.
func ViewerFrom(c *gin.Context) string {
	return c.GetString(ctxViewer)
}

// VerifyToken checks an HS256 token and returns the viewer it names.
func VerifyToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	for _, key := range []string{"sub", "username"} {
		if name, _ := claims[key].(string); strings.TrimSpace(name) != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("token names no viewer")
}

// IssueToken signs an HS256 token for viewer. Tokens are normally issued
// by the session provider; this exists for local use.
func IssueToken(viewer, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": viewer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
