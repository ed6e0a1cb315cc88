package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-comments/domain"
)

// Claims is the token payload issued by the auth service
type Claims struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// ContextUserID is the gin key holding the authenticated user id
const ContextUserID = "user_id"

// GenerateToken signs a token for the principal. Tokens are issued by the
// auth service, this is used by tooling and tests.
func GenerateToken(secret string, p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   p.UserID,
		Username: p.Username,
		Roles:    p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(p.UserID, 10),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken parses tokenString and checks signature and expiry.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token carries no user id")
	}
	return claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// principal on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "authorization header is required")
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			abortUnauthenticated(c, "invalid authorization format")
			return
		}

		claims, err := ValidateToken(secret, tokenString)
		if err != nil {
			logrus.Debugf("rejecting token: %v", err)
			abortUnauthenticated(c, "invalid token")
			return
		}

		roles := claims.Roles
		if len(roles) == 0 {
			roles = []string{domain.RoleUser}
		}
		principal := domain.Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Roles:    roles,
		}
		c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), principal))
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"kind":    domain.KindUnauthenticated,
		"message": msg,
	})
}
