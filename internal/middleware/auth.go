package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Aniket-89/recrm/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "auth_claims"

// JWTClaims is the token payload for both access and refresh tokens.
// TokenType distinguishes the two so a refresh token cannot be replayed as an
// access token.
type JWTClaims struct {
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(userID, username, role string, ttl time.Duration) JWTClaims {
	return newClaims(userID, username, role, "access", ttl)
}

// NewRefreshClaims builds claims for a refresh token.
func NewRefreshClaims(userID, username, role string, ttl time.Duration) JWTClaims {
	return newClaims(userID, username, role, "refresh", ttl)
}

func newClaims(userID, username, role, typ string, ttl time.Duration) JWTClaims {
	now := time.Now()
	return JWTClaims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "recrm",
		},
	}
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JWTAuth rejects requests without a valid Bearer access token.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Missing or malformed Authorization header"))
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil || claims.TokenType != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
	}
}

// GetClaims returns the authenticated claims, or nil outside JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
