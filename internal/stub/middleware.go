package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FryoPie/Student-portal/internal/models"
)

const contextUserKey = "user"

// AuthRequired validates the bearer token and loads the account into the
// request context. Responses mirror the production service's bodies.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}

		claims, err := s.jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.TokenType != tokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Given token not valid for any token type",
			})
			return
		}

		acc, ok := s.store.AccountByID(claims.UserID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "User not found",
			})
			return
		}

		c.Set(contextUserKey, acc.User)
		c.Next()
	}
}

// RequireCoordinator gates an endpoint to coordinator sessions. Must run
// after AuthRequired.
func (s *Server) RequireCoordinator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user.Role != models.RoleCoordinator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "You do not have permission to perform this action.",
			})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	v, _ := c.Get(contextUserKey)
	user, _ := v.(models.User)
	return user
}
