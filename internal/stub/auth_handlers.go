package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/validator"
)

const bcryptCost = 10

func (s *Server) handleLogin(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}

	acc, ok := s.store.AccountByStudentID(req.StudentID)
	if !ok || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"detail": "No active account found with the given credentials",
		})
		return
	}

	access, err := s.jwt.GenerateAccessToken(acc.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}
	tokenID, refresh, err := s.jwt.GenerateRefreshToken(acc.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}
	if err := s.tokens.StoreRefreshToken(c.Request.Context(), tokenID, acc.ID, acc.StudentID, refreshTokenExpiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
		"user":    acc.User,
	})
}

// handleRefresh exchanges a tracked refresh token for a new access token.
// A token whose id was revoked or expired out of the token store is refused
// even when its signature still verifies.
func (s *Server) handleRefresh(c *gin.Context) {
	claims, ok := s.refreshClaims(c)
	if !ok {
		return
	}

	if _, _, err := s.tokens.GetRefreshToken(c.Request.Context(), claims.ID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	acc, ok := s.store.AccountByID(claims.UserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	access, err := s.jwt.GenerateAccessToken(acc.User)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

// handleLogout revokes the submitted refresh token. Further refresh attempts
// with it fail; outstanding access tokens simply age out.
func (s *Server) handleLogout(c *gin.Context) {
	claims, ok := s.refreshClaims(c)
	if !ok {
		return
	}

	if err := s.tokens.DeleteRefreshToken(c.Request.Context(), claims.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Token revocation failed"})
		return
	}
	c.Status(http.StatusResetContent)
}

// refreshClaims binds and verifies the refresh-token body shared by the
// refresh and logout endpoints. It writes the error response itself.
func (s *Server) refreshClaims(c *gin.Context) (*Claims, bool) {
	var req validator.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return nil, false
	}
	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return nil, false
	}

	claims, err := s.jwt.ValidateToken(req.Refresh)
	if err != nil || claims.TokenType != tokenTypeRefresh {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return nil, false
	}
	return claims, true
}

func (s *Server) handleRegister(c *gin.Context) {
	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}

	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Password hashing failed"})
		return
	}

	user, idFree, emailFree := s.store.CreateAccount(models.User{
		StudentID: req.StudentID,
		Email:     req.Email,
		Role:      models.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, hash)
	if !idFree {
		c.JSON(http.StatusBadRequest, gin.H{
			"student_id": []string{"A user with that roll number already exists."},
		})
		return
	}
	if !emailFree {
		c.JSON(http.StatusBadRequest, gin.H{
			"email": []string{"A user with that email already exists."},
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}
