package context

import (
	"estate/internal/domain/access"

	"github.com/labstack/echo/v4"
)

const (
	keyPrincipal = "principal"
	keyToken     = "token"
)

// SetPrincipal stores the authenticated principal and the token it presented.
func SetPrincipal(c echo.Context, principal *access.Principal, token string) {
	c.Set(keyPrincipal, principal)
	c.Set(keyToken, token)
}

// GetPrincipal returns the authenticated principal, or nil on public routes.
func GetPrincipal(c echo.Context) *access.Principal {
	principal, _ := c.Get(keyPrincipal).(*access.Principal)

	return principal
}

// GetToken returns the bearer token of the current request, or "".
func GetToken(c echo.Context) string {
	token, _ := c.Get(keyToken).(string)

	return token
}
