package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/auth"
)

// principalKey is the context key the verified identity is stored under.
const principalKey = "lattice_principal"

// requireAuth verifies the bearer credential and stores the principal for
// downstream handlers. A missing credential is 401; an invalid or expired
// one is 403.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := s.tokens.Verify(bearerToken(c))
		if err != nil {
			s.respond(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// principal retrieves the verified identity set by requireAuth.
func principal(c *gin.Context) auth.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}

// bearerToken extracts the credential from the Authorization header. The
// "Bearer" prefix is optional; desktop clients send the raw token.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}
