package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Raviram02/HostelBite/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // string
	CtxUserRoleKey = "user_role" // string

	RoleUser   = "USER"
	RoleSeller = "SELLER"

	// SellerCookie carries the seller token for the dashboard.
	SellerCookie = "sellerToken"
)

// AuthJWT verifies an HS256 token from the Authorization header, falling back
// to the seller cookie, and stores sub and role in the echo context.
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := tokenFromRequest(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not Authorized"))
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not Authorized"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not Authorized"))
			}

			userID, ok := claims["sub"].(string)
			if !ok || strings.TrimSpace(userID) == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not Authorized"))
			}

			//tokens from the user service carry no role
			role, _ := claims["role"].(string)
			if role == "" {
				role = RoleUser
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, bool) {
	if authz := c.Request().Header.Get("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		raw := strings.TrimSpace(parts[1])
		return raw, raw != ""
	}

	if ck, err := c.Cookie(SellerCookie); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	return "", false
}

// same shape as handler error bodies
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

// TokenIssuer signs HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *TokenIssuer) Issue(subject string, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
