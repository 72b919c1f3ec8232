package stub

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/FryoPie/Student-portal/internal/models"
)

const (
	accessTokenExpiry  = 60 * time.Minute
	refreshTokenExpiry = 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims mirror what the production auth service embeds in its tokens.
type Claims struct {
	UserID    int64       `json:"user_id"`
	StudentID string      `json:"student_id"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and validates the stub's HS256 tokens.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// GenerateAccessToken mints a short-lived access token for the user.
func (s *JWTService) GenerateAccessToken(u models.User) (string, error) {
	return s.sign(u, tokenTypeAccess, accessTokenExpiry, uuid.New().String())
}

// GenerateRefreshToken mints a refresh token. The token id is returned
// separately so the token store can track it.
func (s *JWTService) GenerateRefreshToken(u models.User) (tokenID, token string, err error) {
	tokenID = uuid.New().String()
	token, err = s.sign(u, tokenTypeRefresh, refreshTokenExpiry, tokenID)
	return tokenID, token, err
}

func (s *JWTService) sign(u models.User, tokenType string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    u.ID,
		StudentID: u.StudentID,
		Role:      u.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken parses and verifies a token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
