package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// userIDKey is the echo.Context key holding the authenticated actor's id
const userIDKey = "userID"

// TokenVerifier resolves a bearer token to the id of the user it belongs to
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uint, error)
}

// JWTVerifier verifies HS256 tokens carrying JwtCustomClaims
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) VerifyToken(_ context.Context, tokenString string) (uint, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return 0, fmt.Errorf("invalid token signature")
		}
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}

// SignToken issues a token for user valid for ttl
func (v *JWTVerifier) SignToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Authenticate resolves the bearer token, if any, to the actor.
// Requests without an Authorization header continue anonymously; a malformed or
// invalid token is rejected with 401.
func Authenticate(verifiers ...TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			ctx := c.Request().Context()
			var lastErr error
			for _, v := range verifiers {
				userID, err := v.VerifyToken(ctx, parts[1])
				if err == nil {
					c.Set(userIDKey, userID)
					return next(c)
				}
				lastErr = err
			}
			if lastErr == nil {
				lastErr = errors.New("no token verifier configured")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(lastErr)
		}
	}
}

// RequireAuth rejects anonymous requests. It must run after Authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated actor's id, or 0 for anonymous requests
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
