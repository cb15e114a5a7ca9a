package http

import (
	"fmt"
	"net/http"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/tenantctx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TenantMiddleware authenticates the bearer token and binds the resulting
// actor into the request context. Every route behind it runs with a tenant
// binding; requests without a valid token never reach a handler.
func TenantMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromRequest(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "invalid or missing credentials"))
			}

			ctx := tenantctx.Bind(c.Request().Context(), actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// actorFromRequest parses and verifies the bearer token and extracts the
// actor claims: sub (user), tenantId, role.
func actorFromRequest(header string, secret []byte) (tenantctx.Actor, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return tenantctx.Actor{}, fmt.Errorf("authorization header is not a bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return tenantctx.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tenantctx.Actor{}, fmt.Errorf("unexpected claims type")
	}

	userID, _ := claims["sub"].(string)
	tenantRaw, _ := claims["tenantId"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || tenantRaw == "" {
		return tenantctx.Actor{}, fmt.Errorf("token is missing sub or tenantId claim")
	}

	tenant, err := kernel.TenantIDFromString(tenantRaw)
	if err != nil {
		return tenantctx.Actor{}, err
	}

	return tenantctx.Actor{
		UserID: userID,
		Tenant: tenant,
		Role:   role,
	}, nil
}
